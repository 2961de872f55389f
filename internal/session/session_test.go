package session

import (
	"reflect"
	"testing"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
)

type lookupMap map[string][]string

func (l lookupMap) Muscles(id string) []string { return l[id] }

// TestFormatElapsed covers the two display forms and padding.
func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{-5 * time.Second, "0:00"},
		{1500 * time.Millisecond, "0:01"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// TestDurationMinutes verifies flooring to whole minutes.
func TestDurationMinutes(t *testing.T) {
	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	if got := DurationMinutes(start, start.Add(45*time.Minute+59*time.Second)); got != 45 {
		t.Errorf("got %d, want 45", got)
	}
	if got := DurationMinutes(start, start.Add(-time.Minute)); got != 0 {
		t.Errorf("negative = %d, want 0", got)
	}
}

// TestVolume verifies absent weight or reps contribute zero.
func TestVolume(t *testing.T) {
	exercises := []models.WorkoutExercise{
		{Name: "Bench", Sets: []models.WorkoutSet{
			{SetNumber: 1, Weight: models.Float(100), Reps: models.Int(10)},
			{SetNumber: 2, Weight: models.Float(102.5), Reps: models.Int(8)},
		}},
		{Name: "Plank", Sets: []models.WorkoutSet{{SetNumber: 1, Time: models.Int(60)}}},
		{Name: "Pull-ups", Sets: []models.WorkoutSet{{SetNumber: 1, Weight: models.Float(0), Reps: models.Int(12)}}},
		{Name: "Carry", Sets: []models.WorkoutSet{{SetNumber: 1, Weight: models.Float(50)}}},
	}
	if got := Volume(exercises); got != 1820 {
		t.Errorf("Volume = %v, want 1820", got)
	}
	if got := Volume(nil); got != 0 {
		t.Errorf("Volume(nil) = %v", got)
	}
}

// TestDeriveMuscles verifies first-seen order without duplicates.
func TestDeriveMuscles(t *testing.T) {
	lookup := lookupMap{
		"bench": {"Chest"},
		"dips":  {"Triceps", "Chest"},
		"ohp":   {"Shoulders"},
	}
	exercises := []models.WorkoutExercise{
		{Name: "Bench", ExerciseID: "bench"},
		{Name: "Dips", ExerciseID: "dips"},
		{Name: "Mystery", ExerciseID: "unknown"},
		{Name: "Free text"},
		{Name: "OHP", ExerciseID: "ohp"},
	}
	got := DeriveMuscles(exercises, lookup)
	want := []string{"Chest", "Triceps", "Shoulders"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveMuscles = %v, want %v", got, want)
	}
	if got := DeriveMuscles(exercises, nil); len(got) != 0 || got == nil {
		t.Errorf("nil lookup = %#v, want empty", got)
	}
}

// TestFinish verifies every derived field of the saved workout.
func TestFinish(t *testing.T) {
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local)
	now := start.Add(52 * time.Minute)
	active := models.ActiveWorkout{
		StartTime: start,
		SplitID:   "ppl-push",
		Exercises: []models.WorkoutExercise{{
			Name: "Bench", ExerciseID: "bench",
			Sets: []models.WorkoutSet{{SetNumber: 1, Weight: models.Float(135), Reps: models.Int(10)}},
		}},
	}

	w := Finish(active, lookupMap{"bench": {"Chest"}}, now)
	if w.Date != "2025-03-10" {
		t.Errorf("date = %q", w.Date)
	}
	if w.Duration == nil || *w.Duration != 52 {
		t.Errorf("duration = %v", w.Duration)
	}
	if w.Volume == nil || *w.Volume != 1350 {
		t.Errorf("volume = %v", w.Volume)
	}
	if !reflect.DeepEqual(w.Muscles, []string{"Chest"}) {
		t.Errorf("muscles = %v", w.Muscles)
	}
	if w.Split != "ppl-push" || len(w.Exercises) != 1 {
		t.Errorf("split/exercises = %q, %d", w.Split, len(w.Exercises))
	}
	if err := w.Validate(); err != nil {
		t.Errorf("finished workout invalid: %v", err)
	}
}
