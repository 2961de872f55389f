package models

import "time"

// WorkoutSet is one performed set. Nil fields were not recorded; a zero
// weight is a real value (bodyweight only).
type WorkoutSet struct {
	SetNumber int      `json:"set_number"`
	Weight    *float64 `json:"weight,omitempty"`
	Reps      *int     `json:"reps,omitempty"`
	Time      *int     `json:"time,omitempty"` // seconds
	Distance  *float64 `json:"distance,omitempty"`
	RPE       *float64 `json:"rpe,omitempty"`
}

// HasTrackedField reports whether any field the markdown table carries is set.
func (s WorkoutSet) HasTrackedField() bool {
	return s.Weight != nil || s.Reps != nil || s.Time != nil || s.RPE != nil
}

// WorkoutExercise is a named movement within a workout. ExerciseID points
// into the exercise catalog and does not survive a trip through markdown.
type WorkoutExercise struct {
	Name       string       `json:"name"`
	ExerciseID string       `json:"exercise_id,omitempty"`
	Sets       []WorkoutSet `json:"sets"`
}

// Workout is one logged session. Date (YYYY-MM-DD) is its identity key.
type Workout struct {
	Date      string            `json:"date"`
	Duration  *int              `json:"duration,omitempty"` // minutes
	Muscles   []string          `json:"muscles"`
	Volume    *float64          `json:"volume,omitempty"`
	PRs       *int              `json:"prs,omitempty"`
	Split     string            `json:"split,omitempty"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// ActiveWorkout is a session in progress.
type ActiveWorkout struct {
	StartTime            time.Time         `json:"start_time"`
	Exercises            []WorkoutExercise `json:"exercises"`
	CurrentExerciseIndex *int              `json:"current_exercise_index,omitempty"`
	SplitID              string            `json:"split_id,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
