package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReportAttachment is an evidence file added during a lifecycle update.
// AttachmentType is "resolution" when the update resolved the report,
// "progress" otherwise.
type ReportAttachment struct {
	ID             uuid.UUID
	ReportID       uuid.UUID
	UploadedBy     uuid.UUID
	FilePath       string
	FileName       string
	FileType       string
	AttachmentType string
	FileSize       int64
	CreatedAt      time.Time
}

// ReportFile is a raw file path linked to a report at creation time.
type ReportFile struct {
	ID        uuid.UUID
	ReportID  uuid.UUID
	FilePath  string
	CreatedAt time.Time
}
