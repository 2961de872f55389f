package alpha

import (
	"math"
	"sort"
	"strings"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/session"
)

// KgToLbs converts export weights for vaults that log in pounds.
const KgToLbs = 2.20462

// Catalog matches export exercise names to catalog entries. A nil Catalog
// leaves exercises unlinked.
type Catalog interface {
	FindByName(name string) (models.Exercise, bool)
	Muscles(exerciseID string) []string
}

// ToWorkouts turns sessions into one workout per calendar date, oldest first.
// Sessions on the same date are concatenated. Warmups are dropped, RIR
// becomes RPE = 10 - RIR and weights are converted when unit is lbs.
func ToWorkouts(sessions []Session, unit models.WeightUnit, cat Catalog) []models.Workout {
	byDate := make(map[string]*models.Workout)
	var dates []string

	for _, s := range sessions {
		date := s.Date.Format(models.DateLayout)
		w, ok := byDate[date]
		if !ok {
			w = &models.Workout{Date: date, Split: splitName(s.Name)}
			byDate[date] = w
			dates = append(dates, date)
		}
		if mins, ok := ParseDuration(s.Duration); ok {
			total := mins
			if w.Duration != nil {
				total += *w.Duration
			}
			w.Duration = &total
		}
		for _, ex := range s.Exercises {
			if out, ok := convertExercise(ex, unit, cat); ok {
				w.Exercises = append(w.Exercises, out)
			}
		}
	}

	sort.Strings(dates)
	workouts := make([]models.Workout, 0, len(dates))
	for _, d := range dates {
		w := byDate[d]
		finalize(w, cat)
		workouts = append(workouts, *w)
	}
	return workouts
}

// finalize recomputes the derived metadata of w.
func finalize(w *models.Workout, cat Catalog) {
	vol := session.Volume(w.Exercises)
	w.Volume = &vol
	var lookup session.MuscleLookup
	if cat != nil {
		lookup = cat
	}
	w.Muscles = session.DeriveMuscles(w.Exercises, lookup)
}

func convertExercise(ex Exercise, unit models.WeightUnit, cat Catalog) (models.WorkoutExercise, bool) {
	working := ex.WorkingSets()
	if len(working) == 0 {
		return models.WorkoutExercise{}, false
	}
	out := models.WorkoutExercise{Name: ex.Name}
	if cat != nil {
		if found, ok := cat.FindByName(ex.Name); ok {
			out.ExerciseID = found.ID
		}
	}
	for i, s := range working {
		weight := s.WeightKg
		if unit != models.UnitKg {
			weight = math.Round(weight*KgToLbs*10) / 10
		}
		reps := s.Reps
		out.Sets = append(out.Sets, models.WorkoutSet{
			SetNumber: i + 1,
			Weight:    &weight,
			Reps:      &reps,
			RPE:       rpeFromRIR(s.RIR),
		})
	}
	return out, true
}

// rpeFromRIR maps reps in reserve onto the RPE scale, clamped to [1, 10].
func rpeFromRIR(rir float64) *float64 {
	rpe := math.Min(10, math.Max(1, 10-rir))
	return &rpe
}

// splitName takes the day type from a session name such as
// "Legs · Day 2 · Week 4 · Push-Pull-Legs".
func splitName(name string) string {
	head, _, _ := strings.Cut(name, " · ")
	return strings.TrimSpace(head)
}
