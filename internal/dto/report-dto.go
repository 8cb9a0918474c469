package dto

type CreateReportDTO struct {
	CategoryID      string   `json:"category_id" validate:"required,uuid"`
	UrgencyLevel    string   `json:"urgency_level" validate:"required,oneof=low medium high critical"`
	Title           string   `json:"title" validate:"required,min=5,max=200"`
	Description     string   `json:"description" validate:"required,min=10"`
	LocationAddress string   `json:"location_address" validate:"required"`
	Lat             *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon             *float64 `json:"lon" validate:"omitempty,longitude"`
	CitizenName     string   `json:"citizen_name" validate:"required"`
	CitizenEmail    string   `json:"citizen_email" validate:"required,email"`
	CitizenPhone    string   `json:"citizen_phone" validate:"omitempty"`
	PreferContact   string   `json:"prefer_contact" validate:"omitempty,oneof=email phone"`
}

// UpdateReportDTO carries a lifecycle transition. Status is the target
// status; the notes fields always overwrite the stored values.
type UpdateReportDTO struct {
	Status          string  `json:"status" validate:"required,oneof=received in_review in_progress requires_info resolved rejected closed"`
	AdminNotes      *string `json:"admin_notes"`
	ResolutionNotes *string `json:"resolution_notes"`
	RejectionReason *string `json:"rejection_reason"`
	AssignedUserID  *string `json:"assigned_user_id" validate:"omitempty,uuid"`
}

type RateReportDTO struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type ReportDTO struct {
	ID              string   `json:"id"`
	TrackingCode    string   `json:"tracking_code"`
	UserID          string   `json:"user_id"`
	CategoryID      string   `json:"category_id"`
	CategoryName    string   `json:"category_name,omitempty"`
	CategoryColor   string   `json:"category_color,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	UrgencyLevel    string   `json:"urgency_level"`
	UrgencyLabel    string   `json:"urgency_label"`
	Status          string   `json:"status"`
	StatusLabel     string   `json:"status_label"`
	LocationAddress string   `json:"location_address"`
	Lat             *float64 `json:"lat,omitempty"`
	Lon             *float64 `json:"lon,omitempty"`

	CitizenName   string `json:"citizen_name"`
	CitizenEmail  string `json:"citizen_email"`
	CitizenPhone  string `json:"citizen_phone,omitempty"`
	PreferContact string `json:"prefer_contact"`

	AdminNotes      string `json:"admin_notes,omitempty"`
	ResolutionNotes string `json:"resolution_notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	AssignedUserID  string `json:"assigned_user_id,omitempty"`

	CitizenRating  *int   `json:"citizen_rating,omitempty"`
	CitizenComment string `json:"citizen_comment,omitempty"`

	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	ReviewedAt string `json:"reviewed_at,omitempty"`
	StartedAt  string `json:"started_at,omitempty"`
	ResolvedAt string `json:"resolved_at,omitempty"`
	ClosedAt   string `json:"closed_at,omitempty"`
}

type ReportStatsDTO struct {
	Total         uint64            `json:"total"`
	ByStatus      map[string]uint64 `json:"by_status"`
	CriticalOpen  uint64            `json:"critical_open"`
	AverageRating float64           `json:"average_rating"`
}
