package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// Entity is a registered public or private organization that attends
// reports. Categories holds the ids of the report categories the entity is
// subscribed to.
type Entity struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	NIT             string
	ContactEmail    string
	Phone           null.String
	Status          string
	RejectionReason null.String
	RutPath         null.String
	ChamberPath     null.String
	Categories      []uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       null.Time
}
