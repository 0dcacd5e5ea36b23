package repository

import (
	"context"

	"daily-diet/internal/model"

	"github.com/google/uuid"
)

// MealRepository defines the interface for meal data access operations.
// Every query is scoped by the owner key; only equality predicates are issued.
type MealRepository interface {
	// Insert persists a new meal.
	Insert(ctx context.Context, meal *model.Meal) error

	// ListByOwner retrieves all meals of an owner, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error)

	// GetByIDAndOwner retrieves a single meal. Returns nil, nil when no meal matches.
	GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*model.Meal, error)

	// UpdateByIDAndOwner overwrites the mutable fields and returns the affected row count.
	UpdateByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string, fields model.MealFields) (int64, error)

	// DeleteByIDAndOwner deletes a meal and returns the affected row count.
	DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (int64, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *model.User) error

	// GetBySessionID retrieves the user holding a session. Returns nil, nil when none does.
	GetBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}
