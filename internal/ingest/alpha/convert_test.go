package alpha

import (
	"strings"
	"testing"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
)

type stubCatalog map[string]models.Exercise

func (c stubCatalog) FindByName(name string) (models.Exercise, bool) {
	ex, ok := c[strings.ToLower(name)]
	return ex, ok
}

func (c stubCatalog) Muscles(id string) []string {
	for _, ex := range c {
		if ex.ID == id {
			return ex.Muscles
		}
	}
	return nil
}

func testCatalog() stubCatalog {
	return stubCatalog{
		"bench press": {ID: "bench", Name: "Bench Press", Muscles: []string{"Chest"}},
		"hack squats": {ID: "hack", Name: "Hack Squats", Muscles: []string{"Quadriceps"}},
	}
}

// TestToWorkoutsFromExport verifies dates, warmup removal, RPE and unit
// conversion on the sample export.
func TestToWorkoutsFromExport(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	workouts := ToWorkouts(sessions, models.UnitKg, testCatalog())
	if len(workouts) != 2 {
		t.Fatalf("workouts = %d, want 2", len(workouts))
	}

	push := workouts[0]
	if push.Date != "2026-02-17" || push.Split != "Push" {
		t.Errorf("first workout = %s %q, want 2026-02-17 Push", push.Date, push.Split)
	}
	if push.Duration == nil || *push.Duration != 72 {
		t.Errorf("duration = %v, want 72", push.Duration)
	}
	bench := push.Exercises[0]
	if bench.ExerciseID != "bench" || len(bench.Sets) != 3 {
		t.Fatalf("bench = %+v", bench)
	}
	if *bench.Sets[0].Weight != 102.5 || *bench.Sets[0].Reps != 6 || *bench.Sets[0].RPE != 10 {
		t.Errorf("bench set 1 = %+v", bench.Sets[0])
	}
	if push.Muscles[0] != "Chest" {
		t.Errorf("muscles = %v", push.Muscles)
	}
	// 102.5*6 + 102.5*6 + 100*6
	if push.Volume == nil || *push.Volume != 1830 {
		t.Errorf("volume = %v, want 1830", push.Volume)
	}

	legs := workouts[1]
	if legs.Date != "2026-02-19" || len(legs.Exercises) != 6 {
		t.Fatalf("legs = %s with %d exercises", legs.Date, len(legs.Exercises))
	}
	hack := legs.Exercises[0]
	if len(hack.Sets) != 3 || hack.Sets[0].SetNumber != 1 {
		t.Errorf("hack sets = %+v", hack.Sets)
	}
	if *legs.Exercises[2].Sets[0].Weight != 35 {
		t.Errorf("bodyweight-plus weight = %v", *legs.Exercises[2].Sets[0].Weight)
	}
	if legs.Exercises[3].ExerciseID != "" {
		t.Error("unknown exercise should stay unlinked")
	}
}

// TestToWorkoutsPounds verifies kg weights convert to one decimal of lbs.
func TestToWorkoutsPounds(t *testing.T) {
	s := Session{
		Name: "Pull", Date: time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC), Duration: "50 min",
		Exercises: []Exercise{{Name: "Row", Sets: []Set{{Number: 1, WeightKg: 60, Reps: 8, RIR: 2.5}}}},
	}
	w := ToWorkouts([]Session{s}, models.UnitLbs, nil)[0]
	set := w.Exercises[0].Sets[0]
	if *set.Weight != 132.3 {
		t.Errorf("weight = %v, want 132.3", *set.Weight)
	}
	if *set.RPE != 7.5 {
		t.Errorf("rpe = %v, want 7.5", *set.RPE)
	}
	if len(w.Muscles) != 0 || w.Muscles == nil {
		t.Errorf("muscles without catalog = %#v", w.Muscles)
	}
}

// TestToWorkoutsSameDay verifies two sessions on one date become one
// workout with summed duration.
func TestToWorkoutsSameDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sessions := []Session{
		{Name: "AM", Date: day.Add(7 * time.Hour), Duration: "0:30 hr",
			Exercises: []Exercise{{Name: "Squat", Sets: []Set{{Number: 1, WeightKg: 100, Reps: 5}}}}},
		{Name: "PM", Date: day.Add(18 * time.Hour), Duration: "0:20 hr",
			Exercises: []Exercise{
				{Name: "Curl", Sets: []Set{{Number: 1, WeightKg: 10, Reps: 12}}},
				{Name: "Warmup only", Sets: []Set{{Number: 1, IsWarmup: true}}},
			}},
	}
	ws := ToWorkouts(sessions, models.UnitKg, nil)
	if len(ws) != 1 {
		t.Fatalf("workouts = %d, want 1", len(ws))
	}
	if *ws[0].Duration != 50 || ws[0].Split != "AM" || len(ws[0].Exercises) != 2 {
		t.Errorf("workout = %+v", ws[0])
	}
}

// TestRPEFromRIR verifies the clamp at both ends of the scale.
func TestRPEFromRIR(t *testing.T) {
	for rir, want := range map[float64]float64{0: 10, 1: 9, 0.5: 9.5, 12: 1, -1: 10} {
		if got := *rpeFromRIR(rir); got != want {
			t.Errorf("rpeFromRIR(%v) = %v, want %v", rir, got, want)
		}
	}
}
