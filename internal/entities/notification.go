package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPayload is the structured context stored next to the message.
type NotificationPayload struct {
	ReportID   *uuid.UUID `json:"report_id,omitempty"`
	ReportCode string     `json:"report_code,omitempty"`
	EntityName string     `json:"entity_name,omitempty"`
	OldStatus  string     `json:"old_status,omitempty"`
	NewStatus  string     `json:"new_status,omitempty"`
	Address    string     `json:"address,omitempty"`
}

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Message   string
	Type      string
	IsRead    bool
	Payload   *NotificationPayload
	CreatedAt time.Time
}
