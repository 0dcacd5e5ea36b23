package service

import "daily-diet/internal/model"

// ComputeMetrics aggregates an ordered meal history in a single pass.
//
// Streak is the length of the last on-diet run seen: an off-diet meal resets
// the running count but not the last completed value, so a history ending in
// an off-diet meal still reports the run before it. BestStreak is the longest
// on-diet run.
func ComputeMetrics(meals []model.Meal) model.MealMetrics {
	var metrics model.MealMetrics
	run, lastRun := 0, 0

	for _, meal := range meals {
		if meal.IsOnDiet {
			metrics.DietCount++
			run++
			lastRun = run
			if run > metrics.BestStreak {
				metrics.BestStreak = run
			}
			continue
		}
		run = 0
	}

	metrics.Total = len(meals)
	metrics.NotDietCount = metrics.Total - metrics.DietCount
	metrics.Streak = lastRun

	return metrics
}
