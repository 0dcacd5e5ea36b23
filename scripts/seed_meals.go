package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"daily-diet/internal/config"
	"daily-diet/internal/database"
	"daily-diet/internal/model"
	"daily-diet/internal/repository"
	"daily-diet/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Seeds a week of sample meals for one session token and prints the
// resulting metrics.
//
//	go run ./scripts/seed_meals.go <session-token>
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: seed_meals <session-token>")
	}
	owner := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	repo := repository.NewMealRepository(pool, nil, logger)

	// Breakfast, lunch and dinner for seven days; every third meal is off diet.
	names := []string{"Breakfast", "Lunch", "Dinner"}
	start := time.Now().UTC().AddDate(0, 0, -7).Truncate(24 * time.Hour)
	count := 0
	for day := 0; day < 7; day++ {
		for i, name := range names {
			meal := &model.Meal{
				ID:          uuid.New(),
				Name:        name,
				Description: fmt.Sprintf("%s on day %d", name, day+1),
				IsOnDiet:    (day*len(names)+i)%3 != 2,
				CreatedAt:   start.AddDate(0, 0, day).Add(time.Duration(8+5*i) * time.Hour),
				UserID:      owner,
			}
			if err := repo.Insert(ctx, meal); err != nil {
				log.Fatalf("Failed to insert meal: %v", err)
			}
			count++
		}
	}

	meals, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		log.Fatalf("Failed to list meals: %v", err)
	}
	metrics := service.ComputeMetrics(meals)

	fmt.Printf("Inserted %d meals for %q\n", count, owner)
	fmt.Printf("total=%d diet=%d not_diet=%d streak=%d best_streak=%d\n",
		metrics.Total, metrics.DietCount, metrics.NotDietCount, metrics.Streak, metrics.BestStreak)
}
