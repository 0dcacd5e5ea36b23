package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered diet tracker user.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	SessionID *string   `json:"-" db:"session_id"`
}

// UserRequest represents the request payload for registering a user.
type UserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}
