package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the canonical workout date form.
const DateLayout = "2006-01-02"

// Validate checks a workout received from an API client before it is
// written to the vault. The markdown codec never calls it.
func (w Workout) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&w.Duration, validation.Min(0)),
		validation.Field(&w.Volume, validation.Min(0.0)),
		validation.Field(&w.PRs, validation.Min(0)),
		validation.Field(&w.Exercises),
	)
}

// Validate checks the exercise name and its set list.
func (e WorkoutExercise) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Sets, validation.By(uniqueSetNumbers)),
	)
}

// Validate checks ranges of the recorded fields.
func (s WorkoutSet) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SetNumber, validation.Required, validation.Min(1)),
		validation.Field(&s.Weight, validation.Min(0.0)),
		validation.Field(&s.Reps, validation.Min(0)),
		validation.Field(&s.Time, validation.Min(0)),
		validation.Field(&s.Distance, validation.Min(0.0)),
		validation.Field(&s.RPE, validation.Min(1.0), validation.Max(10.0)),
	)
}

func uniqueSetNumbers(value any) error {
	sets, _ := value.([]WorkoutSet)
	seen := make(map[int]bool, len(sets))
	for _, s := range sets {
		if seen[s.SetNumber] {
			return fmt.Errorf("duplicate set number %d", s.SetNumber)
		}
		seen[s.SetNumber] = true
	}
	return nil
}
