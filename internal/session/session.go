// Package session turns an in-progress workout into a finished one.
package session

import (
	"fmt"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
)

// MuscleLookup resolves an exercise id to its primary muscles. Unknown ids
// return nil. *catalog.Catalog implements it.
type MuscleLookup interface {
	Muscles(exerciseID string) []string
}

// FormatElapsed renders d as M:SS, or H:MM:SS from one hour on. Negative
// durations render as 0:00.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	h, m, s := total/3600, total%3600/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// DurationMinutes returns whole minutes between start and now.
func DurationMinutes(start, now time.Time) int {
	m := int(now.Sub(start) / time.Minute)
	if m < 0 {
		return 0
	}
	return m
}

// Volume sums weight times reps over every set. A missing weight or reps
// counts as zero.
func Volume(exercises []models.WorkoutExercise) float64 {
	var total float64
	for _, ex := range exercises {
		for _, s := range ex.Sets {
			if s.Weight == nil || s.Reps == nil {
				continue
			}
			total += *s.Weight * float64(*s.Reps)
		}
	}
	return total
}

// DeriveMuscles collects the distinct muscles of the exercises in first-seen
// order. Exercises without a catalog id contribute nothing.
func DeriveMuscles(exercises []models.WorkoutExercise, lookup MuscleLookup) []string {
	muscles := []string{}
	seen := make(map[string]bool)
	for _, ex := range exercises {
		if ex.ExerciseID == "" || lookup == nil {
			continue
		}
		for _, m := range lookup.Muscles(ex.ExerciseID) {
			if !seen[m] {
				seen[m] = true
				muscles = append(muscles, m)
			}
		}
	}
	return muscles
}

// Finish converts an active workout into the workout to save. The date is
// now's local calendar date.
func Finish(active models.ActiveWorkout, lookup MuscleLookup, now time.Time) models.Workout {
	duration := DurationMinutes(active.StartTime, now)
	volume := Volume(active.Exercises)
	return models.Workout{
		Date:      now.Format(models.DateLayout),
		Duration:  &duration,
		Muscles:   DeriveMuscles(active.Exercises, lookup),
		Volume:    &volume,
		Split:     active.SplitID,
		Exercises: active.Exercises,
	}
}
