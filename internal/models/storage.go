package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a row of the workouts index table.
type WorkoutRow struct {
	ID            uuid.UUID `json:"id"`
	Date          time.Time `json:"date"`
	Path          string    `json:"path"`
	DurationMin   *int      `json:"duration_min"`
	Muscles       []string  `json:"muscles"`
	Volume        *float64  `json:"volume"`
	PRs           *int      `json:"prs"`
	Split         string    `json:"split"`
	ExerciseCount int       `json:"exercise_count"`
	SetCount      int       `json:"set_count"`
	IndexedAt     time.Time `json:"indexed_at"`
}

// WorkoutSetRow is a row of the workout_sets index table.
type WorkoutSetRow struct {
	WorkoutID      uuid.UUID `json:"workout_id"`
	Date           time.Time `json:"date"`
	ExerciseNumber int       `json:"exercise_number"`
	ExerciseName   string    `json:"exercise_name"`
	SetNumber      int       `json:"set_number"`
	Weight         *float64  `json:"weight"`
	Reps           *int      `json:"reps"`
	TimeSec        *int      `json:"time_sec"`
	RPE            *float64  `json:"rpe"`
}
