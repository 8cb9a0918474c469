package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type EntityAuditLog struct {
	ID        uuid.UUID
	EntityID  uuid.UUID
	AdminID   uuid.UUID
	Action    string
	Reason    null.String
	CreatedAt time.Time
}
