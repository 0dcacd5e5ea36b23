package service

import (
	"context"

	"daily-diet/internal/auth"
	"daily-diet/internal/model"
)

// MealService defines the meal ledger. Every operation is scoped by the
// owner key of the authorization context.
type MealService interface {
	// Create validates the request and stores a new meal owned by the caller.
	Create(ctx context.Context, ac auth.Context, req *model.MealRequest) (*model.Meal, error)

	// ListAll retrieves every meal of the caller, oldest first.
	ListAll(ctx context.Context, ac auth.Context) ([]model.Meal, error)

	// GetOne retrieves a single meal of the caller.
	GetOne(ctx context.Context, ac auth.Context, id string) (*model.Meal, error)

	// Update overwrites the mutable fields of a meal of the caller.
	Update(ctx context.Context, ac auth.Context, id string, req *model.MealRequest) (*model.MealFields, error)

	// Delete removes a meal of the caller.
	Delete(ctx context.Context, ac auth.Context, id string) error

	// Metrics aggregates the caller's meal history.
	Metrics(ctx context.Context, ac auth.Context) (*model.MealMetrics, error)

	// Export writes a snapshot of the caller's meals to the archive store.
	Export(ctx context.Context, ac auth.Context) (*model.ExportResult, error)
}

// UserService defines operations for user registration.
type UserService interface {
	// Register creates a user and issues a fresh session token.
	Register(ctx context.Context, req *model.UserRequest) (*model.User, string, error)
}
