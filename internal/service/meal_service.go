package service

import (
	"context"
	"fmt"
	"time"

	"daily-diet/internal/archive"
	"daily-diet/internal/auth"
	"daily-diet/internal/model"
	"daily-diet/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("daily-diet/internal/service")

// mealService implements MealService.
type mealService struct {
	mealRepo repository.MealRepository
	archive  archive.Store
	logger   zerolog.Logger
	now      func() time.Time
}

// NewMealService creates a new meal ledger service.
func NewMealService(mealRepo repository.MealRepository, store archive.Store, logger zerolog.Logger) MealService {
	return &mealService{
		mealRepo: mealRepo,
		archive:  store,
		logger:   logger.With().Str("service", "meal").Logger(),
		now:      time.Now,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func requireOwner(ac auth.Context) error {
	if ac.OwnerID == "" {
		return model.ErrUnauthorised
	}
	return nil
}

// Create validates the request and stores a new meal owned by the caller.
func (s *mealService) Create(ctx context.Context, ac auth.Context, req *model.MealRequest) (_ *model.Meal, err error) {
	ctx, span := tracer.Start(ctx, "meal.create")
	defer func() { endSpan(span, err) }()

	if err = requireOwner(ac); err != nil {
		return nil, err
	}

	fields, err := ValidateMealRequest(req)
	if err != nil {
		s.logger.Debug().Err(err).Msg("invalid meal request")
		return nil, err
	}

	meal := &model.Meal{
		ID:          uuid.New(),
		Name:        fields.Name,
		Description: fields.Description,
		IsOnDiet:    fields.IsOnDiet,
		CreatedAt:   s.now().UTC(),
		UserID:      ac.OwnerID,
	}
	span.SetAttributes(attribute.String("meal.id", meal.ID.String()))

	if err = s.mealRepo.Insert(ctx, meal); err != nil {
		s.logger.Error().Err(err).Str("meal_id", meal.ID.String()).Msg("failed to create meal")
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	s.logger.Info().
		Str("meal_id", meal.ID.String()).
		Bool("is_on_diet", meal.IsOnDiet).
		Msg("meal created successfully")

	return meal, nil
}

// ListAll retrieves every meal of the caller, oldest first.
// An empty history is reported as model.ErrNoMeals.
func (s *mealService) ListAll(ctx context.Context, ac auth.Context) (_ []model.Meal, err error) {
	ctx, span := tracer.Start(ctx, "meal.list")
	defer func() { endSpan(span, err) }()

	meals, err := s.listOwned(ctx, ac)
	if err != nil {
		return nil, err
	}

	if len(meals) == 0 {
		s.logger.Debug().Msg("no meals for owner")
		return nil, model.ErrNoMeals
	}

	span.SetAttributes(attribute.Int("meal.count", len(meals)))
	return meals, nil
}

// GetOne retrieves a single meal of the caller.
func (s *mealService) GetOne(ctx context.Context, ac auth.Context, id string) (_ *model.Meal, err error) {
	ctx, span := tracer.Start(ctx, "meal.get")
	defer func() { endSpan(span, err) }()

	if err = requireOwner(ac); err != nil {
		return nil, err
	}

	mealID, err := ParseMealID(id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("meal.id", mealID.String()))

	meal, err := s.mealRepo.GetByIDAndOwner(ctx, mealID, ac.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_id", mealID.String()).Msg("failed to get meal")
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	if meal == nil {
		s.logger.Debug().Str("meal_id", mealID.String()).Msg("meal not found")
		return nil, model.ErrMealNotFound
	}

	return meal, nil
}

// Update overwrites name, description and is_on_diet of a meal of the caller
// and returns the stored fields.
func (s *mealService) Update(ctx context.Context, ac auth.Context, id string, req *model.MealRequest) (_ *model.MealFields, err error) {
	ctx, span := tracer.Start(ctx, "meal.update")
	defer func() { endSpan(span, err) }()

	if err = requireOwner(ac); err != nil {
		return nil, err
	}

	mealID, err := ParseMealID(id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("meal.id", mealID.String()))

	fields, err := ValidateMealRequest(req)
	if err != nil {
		s.logger.Debug().Err(err).Str("meal_id", mealID.String()).Msg("invalid meal request")
		return nil, err
	}

	existing, err := s.mealRepo.GetByIDAndOwner(ctx, mealID, ac.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_id", mealID.String()).Msg("failed to get meal")
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}
	if existing == nil {
		s.logger.Debug().Str("meal_id", mealID.String()).Msg("meal not found")
		return nil, model.ErrMealNotFound
	}

	affected, err := s.mealRepo.UpdateByIDAndOwner(ctx, mealID, ac.OwnerID, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_id", mealID.String()).Msg("failed to update meal")
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	// Deleted between the lookup and the update.
	if affected == 0 {
		return nil, model.ErrMealNotFound
	}

	s.logger.Info().Str("meal_id", mealID.String()).Msg("meal updated successfully")

	return &fields, nil
}

// Delete removes a meal of the caller.
func (s *mealService) Delete(ctx context.Context, ac auth.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "meal.delete")
	defer func() { endSpan(span, err) }()

	if err = requireOwner(ac); err != nil {
		return err
	}

	mealID, err := ParseMealID(id)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("meal.id", mealID.String()))

	affected, err := s.mealRepo.DeleteByIDAndOwner(ctx, mealID, ac.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_id", mealID.String()).Msg("failed to delete meal")
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	if affected == 0 {
		s.logger.Debug().Str("meal_id", mealID.String()).Msg("meal not found")
		return model.ErrMealNotFound
	}

	s.logger.Info().Str("meal_id", mealID.String()).Msg("meal deleted successfully")

	return nil
}

// Metrics aggregates the caller's meal history. An empty history yields zeros.
func (s *mealService) Metrics(ctx context.Context, ac auth.Context) (_ *model.MealMetrics, err error) {
	ctx, span := tracer.Start(ctx, "meal.metrics")
	defer func() { endSpan(span, err) }()

	meals, err := s.listOwned(ctx, ac)
	if err != nil {
		return nil, err
	}

	metrics := ComputeMetrics(meals)
	span.SetAttributes(
		attribute.Int("meal.count", metrics.Total),
		attribute.Int("meal.streak", metrics.Streak),
	)

	return &metrics, nil
}

// Export writes the caller's meals, in ledger order, to the archive store.
func (s *mealService) Export(ctx context.Context, ac auth.Context) (_ *model.ExportResult, err error) {
	ctx, span := tracer.Start(ctx, "meal.export")
	defer func() { endSpan(span, err) }()

	meals, err := s.listOwned(ctx, ac)
	if err != nil {
		return nil, err
	}

	if len(meals) == 0 {
		return nil, model.ErrNoMeals
	}

	data, err := archive.Encode(meals)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode meal snapshot")
		return nil, fmt.Errorf("failed to export meals: %w", err)
	}

	key := exportKey(ac.OwnerID, s.now())
	if err = s.archive.Put(ctx, key, data); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to store meal snapshot")
		return nil, fmt.Errorf("failed to export meals: %w", err)
	}

	s.logger.Info().
		Str("key", key).
		Int("meal_count", len(meals)).
		Int("bytes", len(data)).
		Msg("meals exported successfully")

	return &model.ExportResult{Key: key, Count: len(meals)}, nil
}

func (s *mealService) listOwned(ctx context.Context, ac auth.Context) ([]model.Meal, error) {
	if err := requireOwner(ac); err != nil {
		return nil, err
	}

	meals, err := s.mealRepo.ListByOwner(ctx, ac.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list meals")
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return meals, nil
}

// exportKey derives the snapshot key. The owner key is hashed so that a raw
// session token never ends up in an object name.
func exportKey(ownerID string, at time.Time) string {
	owner := uuid.NewSHA1(uuid.NameSpaceURL, []byte(ownerID))
	return fmt.Sprintf("%s/%s.jsonl.gz", owner, at.UTC().Format("20060102T150405.000000000Z"))
}
