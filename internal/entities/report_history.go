package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// ReportHistory is an append-only audit row. Rows are never updated or
// deleted.
type ReportHistory struct {
	ID            uuid.UUID
	ReportID      uuid.UUID
	ChangedBy     null.String
	ChangedByName string
	Action        string
	OldValue      null.String
	NewValue      null.String
	Comment       null.String
	CreatedAt     time.Time
}
