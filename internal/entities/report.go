package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// Report is a citizen complaint about urban infrastructure. Milestone
// timestamps are written once when the report first reaches the matching
// status and are never overwritten.
type Report struct {
	ID              uuid.UUID
	TrackingCode    string
	UserID          uuid.UUID
	CategoryID      uuid.UUID
	Title           string
	Description     string
	UrgencyLevel    string
	Status          string
	LocationAddress string
	Lat             null.Float64
	Lon             null.Float64

	CitizenName   string
	CitizenEmail  string
	CitizenPhone  null.String
	PreferContact string

	AdminNotes      null.String
	ResolutionNotes null.String
	RejectionReason null.String
	AssignedUserID  null.String

	CitizenRating  null.Int
	CitizenComment null.String

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReviewedAt null.Time
	StartedAt  null.Time
	ResolvedAt null.Time
	ClosedAt   null.Time
}
