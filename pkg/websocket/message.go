package websocket

import (
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every outgoing message with its type so the frontend knows
// how to render it.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NotificationPayload mirrors a stored notification row for realtime
// delivery.
type NotificationPayload struct {
	ID        uuid.UUID   `json:"id"`
	Message   string      `json:"message"`
	Type      string      `json:"type"`
	IsRead    bool        `json:"is_read"`
	Payload   interface{} `json:"payload,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
