package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReportComment is append-only. IsInternal is the inverse of IsPublic;
// citizens only ever see rows with IsPublic set.
type ReportComment struct {
	ID         uuid.UUID
	ReportID   uuid.UUID
	UserID     uuid.UUID
	UserName   string
	Comment    string
	IsPublic   bool
	IsInternal bool
	CreatedAt  time.Time
}
