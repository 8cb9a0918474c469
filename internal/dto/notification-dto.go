package dto

import "urbanreport/internal/entities"

type NotificationDTO struct {
	ID        string                        `json:"id"`
	UserID    string                        `json:"user_id"`
	Message   string                        `json:"message"`
	Type      string                        `json:"type"`
	IsRead    bool                          `json:"is_read"`
	Payload   *entities.NotificationPayload `json:"payload,omitempty"`
	CreatedAt string                        `json:"created_at"`
}
