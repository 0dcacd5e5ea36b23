package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-diet/internal/model"
	"daily-diet/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
		now:      time.Now,
	}
}

// Register creates a user holding a fresh session token.
func (s *userService) Register(ctx context.Context, req *model.UserRequest) (_ *model.User, _ string, err error) {
	ctx, span := tracer.Start(ctx, "user.register")
	defer func() { endSpan(span, err) }()

	input, err := ValidateUserRequest(req)
	if err != nil {
		s.logger.Debug().Err(err).Msg("invalid user request")
		return nil, "", err
	}

	// The session is written with the row so a failed insert leaves nothing behind.
	token := uuid.NewString()
	user := &model.User{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: s.now().UTC(),
		SessionID: &token,
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			s.logger.Debug().Msg("email already registered")
			return nil, "", err
		}
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create user")
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered successfully")

	return user, token, nil
}
