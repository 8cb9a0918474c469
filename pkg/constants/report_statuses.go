package constants

// Report lifecycle statuses as stored in the reports table.
const (
	StatusReceived     = "received"
	StatusInReview     = "in_review"
	StatusInProgress   = "in_progress"
	StatusRequiresInfo = "requires_info"
	StatusResolved     = "resolved"
	StatusRejected     = "rejected"
	StatusClosed       = "closed"
)

// StatusLabels maps status keys to their user-facing names.
var StatusLabels = map[string]string{
	StatusReceived:     "Recibido",
	StatusInReview:     "En Revisión",
	StatusInProgress:   "En Progreso",
	StatusRequiresInfo: "Requiere Información",
	StatusResolved:     "Resuelto",
	StatusRejected:     "Rechazado",
	StatusClosed:       "Cerrado",
}

// StatusLabel returns the display name for a status, falling back to the raw
// key for unknown values.
func StatusLabel(status string) string {
	if label, ok := StatusLabels[status]; ok {
		return label
	}
	return status
}

// IsValidStatus reports whether the given status is one of the lifecycle
// statuses.
func IsValidStatus(status string) bool {
	_, ok := StatusLabels[status]
	return ok
}
