package events

import (
	"urbanreport/internal/entities"
)

// ReportStatusChangedEvent fires after a lifecycle update changed a report's
// status and the transaction committed.
type ReportStatusChangedEvent struct {
	Report    *entities.Report
	OldStatus string
	NewStatus string
	ActorName string
}

func (e ReportStatusChangedEvent) Name() string {
	return "report.status.changed"
}

// EntityStatusChangedEvent fires after an admin approved or rejected an
// entity registration.
type EntityStatusChangedEvent struct {
	Entity *entities.Entity
	Action string
	Reason string
}

func (e EntityStatusChangedEvent) Name() string {
	return "entity.status.changed"
}
