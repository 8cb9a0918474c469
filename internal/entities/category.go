package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID
	Name        string
	Description null.String
	Icon        null.String
	Color       null.String
	IsActive    bool
	CreatedAt   time.Time
}
