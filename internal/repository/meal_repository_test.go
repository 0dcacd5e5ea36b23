package repository

import (
	"context"
	"testing"
	"time"

	"daily-diet/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMeal(owner string, name string, onDiet bool, createdAt time.Time) *model.Meal {
	return &model.Meal{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		IsOnDiet:    onDiet,
		CreatedAt:   createdAt,
		UserID:      owner,
	}
}

func TestMealRepository_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	observer := &countingObserver{}
	repo := NewMealRepository(pool, observer, zerolog.Nop())
	ctx := context.Background()

	meal := newTestMeal("token-a", "Salad", true, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.Insert(ctx, meal))

	got, err := repo.GetByIDAndOwner(ctx, meal.ID, "token-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, meal.ID, got.ID)
	assert.Equal(t, "Salad", got.Name)
	assert.Equal(t, "Salad description", got.Description)
	assert.True(t, got.IsOnDiet)
	assert.Equal(t, "token-a", got.UserID)
	assert.True(t, meal.CreatedAt.Equal(got.CreatedAt))

	assert.Equal(t, []string{"meal_insert", "meal_get"}, observer.ops)
}

func TestMealRepository_GetByIDAndOwner_Scoping(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMealRepository(pool, nil, zerolog.Nop())
	ctx := context.Background()

	meal := newTestMeal("token-a", "Burger", false, time.Now())
	require.NoError(t, repo.Insert(ctx, meal))

	tests := []struct {
		name  string
		id    uuid.UUID
		owner string
	}{
		{name: "Other owner", id: meal.ID, owner: "token-b"},
		{name: "Unknown ID", id: uuid.New(), owner: "token-a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByIDAndOwner(ctx, tt.id, tt.owner)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestMealRepository_ListByOwner_Ordering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMealRepository(pool, nil, zerolog.Nop())
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	lunch := newTestMeal("token-a", "Lunch", true, base.Add(4*time.Hour))
	breakfast := newTestMeal("token-a", "Breakfast", true, base)
	dinner := newTestMeal("token-a", "Dinner", false, base.Add(10*time.Hour))
	foreign := newTestMeal("token-b", "Snack", true, base.Add(time.Hour))

	// Insert out of chronological order
	for _, m := range []*model.Meal{lunch, dinner, breakfast, foreign} {
		require.NoError(t, repo.Insert(ctx, m))
	}

	meals, err := repo.ListByOwner(ctx, "token-a")
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, "Breakfast", meals[0].Name)
	assert.Equal(t, "Lunch", meals[1].Name)
	assert.Equal(t, "Dinner", meals[2].Name)

	empty, err := repo.ListByOwner(ctx, "token-c")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMealRepository_ListByOwner_SameTimestampKeepsInsertionOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMealRepository(pool, nil, zerolog.Nop())
	ctx := context.Background()

	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth"}
	for _, name := range names {
		require.NoError(t, repo.Insert(ctx, newTestMeal("token-a", name, true, at)))
	}

	// Repeated reads must agree with each other and with insertion order
	for i := 0; i < 3; i++ {
		meals, err := repo.ListByOwner(ctx, "token-a")
		require.NoError(t, err)
		require.Len(t, meals, len(names))
		for j, m := range meals {
			assert.Equal(t, names[j], m.Name)
		}
	}
}

func TestMealRepository_UpdateByIDAndOwner(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMealRepository(pool, nil, zerolog.Nop())
	ctx := context.Background()

	meal := newTestMeal("token-a", "Pizza", false, time.Now())
	require.NoError(t, repo.Insert(ctx, meal))

	fields := model.MealFields{Name: "Veggie pizza", Description: "thin crust", IsOnDiet: true}

	affected, err := repo.UpdateByIDAndOwner(ctx, meal.ID, "token-b", fields)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected, "other owner must not update")

	affected, err = repo.UpdateByIDAndOwner(ctx, meal.ID, "token-a", fields)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetByIDAndOwner(ctx, meal.ID, "token-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Veggie pizza", got.Name)
	assert.Equal(t, "thin crust", got.Description)
	assert.True(t, got.IsOnDiet)
}

func TestMealRepository_DeleteByIDAndOwner(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMealRepository(pool, nil, zerolog.Nop())
	ctx := context.Background()

	meal := newTestMeal("token-a", "Soup", true, time.Now())
	require.NoError(t, repo.Insert(ctx, meal))

	affected, err := repo.DeleteByIDAndOwner(ctx, meal.ID, "token-b")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.DeleteByIDAndOwner(ctx, meal.ID, "token-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.DeleteByIDAndOwner(ctx, meal.ID, "token-a")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestMealRepository_ContextCancelled(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMealRepository(pool, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListByOwner(ctx, "token-a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list meals")
}
