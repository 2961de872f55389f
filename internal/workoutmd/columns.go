// Package workoutmd converts workouts to and from the markdown note format:
//
//	---
//	type: workout
//	date: 2025-12-21
//	duration: 45
//	muscles: [chest, triceps]
//	volume: 12500
//	prs: 1
//	---
//
//	## Exercise Name
//
//	| Set | Weight | Reps | RPE |
//	|-----|-----|-----|-----|
//	| 1 | 135 | 10 |  |
//	| 2 | 155 | 8 | 7 |
//
// Encode and Decode are pure and safe for concurrent use.
package workoutmd

import (
	"strconv"

	"github.com/meltforce/gymbuddy/internal/models"
)

// column is one optional table column: its header, whether a set carries the
// field, and how the field is rendered in a cell.
type column struct {
	header  string
	present func(models.WorkoutSet) bool
	format  func(models.WorkoutSet) string
}

// columns lists the optional columns in table order. Set is always first and
// is not part of this list.
var columns = []column{
	{
		header:  "Weight",
		present: func(s models.WorkoutSet) bool { return s.Weight != nil },
		format:  func(s models.WorkoutSet) string { return formatFloat(s.Weight) },
	},
	{
		header:  "Reps",
		present: func(s models.WorkoutSet) bool { return s.Reps != nil },
		format:  func(s models.WorkoutSet) string { return formatInt(s.Reps) },
	},
	{
		header:  "Time",
		present: func(s models.WorkoutSet) bool { return s.Time != nil },
		format: func(s models.WorkoutSet) string {
			if s.Time == nil {
				return ""
			}
			return strconv.Itoa(*s.Time) + "s"
		},
	},
	{
		header:  "RPE",
		present: func(s models.WorkoutSet) bool { return s.RPE != nil },
		format:  func(s models.WorkoutSet) string { return formatFloat(s.RPE) },
	},
}

// activeColumns returns the columns at least one set populates.
func activeColumns(sets []models.WorkoutSet) []column {
	var active []column
	for _, c := range columns {
		for _, s := range sets {
			if c.present(s) {
				active = append(active, c)
				break
			}
		}
	}
	return active
}

const separatorCell = "-----"

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
