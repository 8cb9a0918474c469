package constants

// User roles.
const (
	RoleCitizen = "citizen"
	RoleEntity  = "entity"
	RoleAdmin   = "admin"
)

// Urgency levels.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

var UrgencyLabels = map[string]string{
	UrgencyLow:      "Baja",
	UrgencyMedium:   "Media",
	UrgencyHigh:     "Alta",
	UrgencyCritical: "Crítica",
}

// History actions.
const (
	ActionCreated      = "created"
	ActionStatusChange = "status_change"
	ActionAssignment   = "assignment"
	ActionComment      = "comment"
	ActionAttachment   = "attachment"
)

var ActionLabels = map[string]string{
	ActionCreated:      "Creado",
	ActionStatusChange: "Cambio de Estado",
	ActionAssignment:   "Asignación",
	ActionComment:      "Comentario",
	ActionAttachment:   "Archivo Adjunto",
}

// Entity registration statuses.
const (
	EntityPending  = "pending"
	EntityApproved = "approved"
	EntityRejected = "rejected"
)

// Entity audit actions.
const (
	EntityActionApproved = "approved"
	EntityActionRejected = "rejected"
)

// Notification types.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Attachment classification.
const (
	AttachmentInitial    = "initial"
	AttachmentProgress   = "progress"
	AttachmentResolution = "resolution"

	FileTypeImage    = "image"
	FileTypeVideo    = "video"
	FileTypeDocument = "document"
)

// AdminDisplayName is the actor name shown in notification payloads when the
// acting user is an administrator.
const AdminDisplayName = "Administrador"
