package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	Phone        null.String
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}
