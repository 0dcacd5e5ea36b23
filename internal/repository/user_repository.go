package repository

import (
	"context"
	"errors"
	"fmt"

	"daily-diet/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	db       DBTX
	observer QueryObserver
	logger   zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db DBTX, observer QueryObserver, logger zerolog.Logger) UserRepository {
	return &userRepository{
		db:       db,
		observer: observerOrNoop(observer),
		logger:   logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, created_at, session_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	err := r.observer.ObserveDB("user_insert", func() error {
		_, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.CreatedAt, user.SessionID)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("constraint", pgErr.ConstraintName).Msg("duplicate user")
			return model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetBySessionID retrieves the user holding a session.
func (r *userRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.User, error) {
	query := `
		SELECT id, name, email, created_at, session_id
		FROM users
		WHERE session_id = $1
	`

	var u model.User
	found := false
	err := r.observer.ObserveDB("user_by_session", func() error {
		err := r.db.QueryRow(ctx, query, sessionID).
			Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.SessionID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err == nil {
			found = true
		}
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query user by session")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !found {
		return nil, nil
	}

	return &u, nil
}
