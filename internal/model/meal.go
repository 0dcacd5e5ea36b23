package model

import (
	"time"

	"github.com/google/uuid"
)

// Meal represents a single logged meal owned by one user.
type Meal struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	IsOnDiet    bool      `json:"is_on_diet" db:"is_on_diet"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UserID      string    `json:"user_id" db:"user_id"`
}

// MealRequest represents the request payload for creating or updating a meal.
// IsOnDiet is a pointer so that an absent flag can be told apart from false.
type MealRequest struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
	IsOnDiet    *bool   `json:"is_on_diet" validate:"required"`
}

// MealFields is the validated, mutable part of a meal.
type MealFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsOnDiet    bool   `json:"is_on_diet"`
}

// MealMetrics summarises a user's meal history.
type MealMetrics struct {
	Total        int `json:"total"`
	DietCount    int `json:"diet_count"`
	NotDietCount int `json:"not_diet_count"`
	Streak       int `json:"streak"`
	BestStreak   int `json:"best_streak"`
}

// ExportResult describes where a meal snapshot was written.
type ExportResult struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
