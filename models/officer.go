package models

import (
	"time"

	"github.com/google/uuid"
)

// Officer represents an office account entitled to request drafts
type Officer struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	Designation  *string   `json:"designation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
