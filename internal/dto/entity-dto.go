package dto

type EntityDTO struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Name            string   `json:"name"`
	NIT             string   `json:"nit"`
	ContactEmail    string   `json:"contact_email"`
	Phone           string   `json:"phone,omitempty"`
	Status          string   `json:"status"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	RutPath         string   `json:"rut_path,omitempty"`
	ChamberPath     string   `json:"chamber_path,omitempty"`
	Categories      []string `json:"categories"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}

type UpdateEntityCategoriesDTO struct {
	// The empty list is valid and clears every subscription.
	Categories []string `json:"categories" validate:"dive,uuid"`
}

type RejectEntityDTO struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type EntityAuditLogDTO struct {
	ID        string `json:"id"`
	EntityID  string `json:"entity_id"`
	AdminID   string `json:"admin_id"`
	Action    string `json:"action"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}
