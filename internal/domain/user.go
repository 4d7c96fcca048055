package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered application user.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
