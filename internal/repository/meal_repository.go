package repository

import (
	"context"
	"errors"
	"fmt"

	"daily-diet/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// mealRepository implements the MealRepository interface using PostgreSQL.
type mealRepository struct {
	db       DBTX
	observer QueryObserver
	logger   zerolog.Logger
}

// NewMealRepository creates a new PostgreSQL-backed meal repository.
// observer may be nil.
func NewMealRepository(db DBTX, observer QueryObserver, logger zerolog.Logger) MealRepository {
	return &mealRepository{
		db:       db,
		observer: observerOrNoop(observer),
		logger:   logger.With().Str("repository", "meal").Logger(),
	}
}

// Insert persists a new meal.
func (r *mealRepository) Insert(ctx context.Context, meal *model.Meal) error {
	query := `
		INSERT INTO meals (id, name, description, is_on_diet, created_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	err := r.observer.ObserveDB("meal_insert", func() error {
		_, err := r.db.Exec(ctx, query,
			meal.ID,
			meal.Name,
			meal.Description,
			meal.IsOnDiet,
			meal.CreatedAt,
			meal.UserID,
		)
		return err
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("meal_id", meal.ID.String()).
			Msg("failed to insert meal")
		return fmt.Errorf("failed to insert meal: %w", err)
	}

	r.logger.Debug().
		Str("meal_id", meal.ID.String()).
		Msg("meal inserted successfully")

	return nil
}

// ListByOwner retrieves all meals of an owner, oldest first.
// Ties on created_at fall back to insertion order.
func (r *mealRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error) {
	query := `
		SELECT id, name, description, is_on_diet, created_at, user_id
		FROM meals
		WHERE user_id = $1
		ORDER BY created_at, seq
	`

	var meals []model.Meal
	err := r.observer.ObserveDB("meal_list", func() error {
		rows, err := r.db.Query(ctx, query, ownerID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m model.Meal
			if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.IsOnDiet, &m.CreatedAt, &m.UserID); err != nil {
				return fmt.Errorf("failed to scan meal: %w", err)
			}
			meals = append(meals, m)
		}

		return rows.Err()
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list meals")
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return meals, nil
}

// GetByIDAndOwner retrieves a single meal. Returns nil, nil when no meal matches.
func (r *mealRepository) GetByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*model.Meal, error) {
	query := `
		SELECT id, name, description, is_on_diet, created_at, user_id
		FROM meals
		WHERE id = $1 AND user_id = $2
	`

	var m model.Meal
	found := false
	err := r.observer.ObserveDB("meal_get", func() error {
		err := r.db.QueryRow(ctx, query, id, ownerID).
			Scan(&m.ID, &m.Name, &m.Description, &m.IsOnDiet, &m.CreatedAt, &m.UserID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err == nil {
			found = true
		}
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Str("meal_id", id.String()).Msg("failed to query meal")
		return nil, fmt.Errorf("failed to query meal: %w", err)
	}

	if !found {
		r.logger.Debug().Str("meal_id", id.String()).Msg("meal not found")
		return nil, nil
	}

	return &m, nil
}

// UpdateByIDAndOwner overwrites the mutable fields and returns the affected row count.
func (r *mealRepository) UpdateByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string, fields model.MealFields) (int64, error) {
	query := `
		UPDATE meals
		SET name = $3, description = $4, is_on_diet = $5
		WHERE id = $1 AND user_id = $2
	`

	var affected int64
	err := r.observer.ObserveDB("meal_update", func() error {
		tag, err := r.db.Exec(ctx, query, id, ownerID, fields.Name, fields.Description, fields.IsOnDiet)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("meal_id", id.String()).Msg("failed to update meal")
		return 0, fmt.Errorf("failed to update meal: %w", err)
	}

	r.logger.Debug().
		Str("meal_id", id.String()).
		Int64("affected", affected).
		Msg("meal update executed")

	return affected, nil
}

// DeleteByIDAndOwner deletes a meal and returns the affected row count.
func (r *mealRepository) DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (int64, error) {
	query := `
		DELETE FROM meals
		WHERE id = $1 AND user_id = $2
	`

	var affected int64
	err := r.observer.ObserveDB("meal_delete", func() error {
		tag, err := r.db.Exec(ctx, query, id, ownerID)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("meal_id", id.String()).Msg("failed to delete meal")
		return 0, fmt.Errorf("failed to delete meal: %w", err)
	}

	r.logger.Debug().
		Str("meal_id", id.String()).
		Int64("affected", affected).
		Msg("meal delete executed")

	return affected, nil
}
