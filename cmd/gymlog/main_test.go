package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/splits"
	"github.com/meltforce/gymbuddy/internal/vault"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeVault creates a config pointing at a temp vault holding one workout.
func writeVault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	vaultDir := filepath.Join(dir, "vault")

	store := vault.NewStore(vault.NewDirFS(vaultDir), "Workouts")
	w := models.Workout{
		Date:     "2025-01-15",
		Duration: models.Int(50),
		Muscles:  []string{"Chest"},
		Exercises: []models.WorkoutExercise{{Name: "Bench Press", Sets: []models.WorkoutSet{
			{SetNumber: 1, Weight: models.Float(100), Reps: models.Int(5)},
			{SetNumber: 2, Weight: models.Float(100), Reps: models.Int(5)},
		}}},
	}
	if _, err := store.Save(context.Background(), w); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg := `server:
  port: 8080
database:
  host: localhost
  port: 5432
  name: gymbuddy
  user: gymbuddy
auth:
  api_key: test
vault:
  path: ` + vaultDir + `
training:
  default_unit: kg
  active_template: ppl
  weekly_schedule:
    monday: ppl-push
  custom_exercises_file: ` + filepath.Join(dir, "exercises.yaml") + `
  custom_templates_file: ` + filepath.Join(dir, "templates.yaml") + `
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestRootHelp verifies the root command prints help.
func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "gymlog") {
		t.Fatalf("unexpected help output: %q", out)
	}
}

// TestFmt covers printing, check mode and in-place rewriting.
func TestFmt(t *testing.T) {
	dir := t.TempDir()
	messy := "## Squat\n|set|weight|reps|\n|-|-|-|\n|1|100.0|5|\n"
	path := filepath.Join(dir, "2025-01-15.md")
	if err := os.WriteFile(path, []byte(messy), 0o644); err != nil {
		t.Fatal(err)
	}
	want := workoutmd.Encode(workoutmd.Decode(messy, "2025-01-15"))

	out, err := run(t, "fmt", "--check=false", "--write=false", path)
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if out != want {
		t.Errorf("fmt output = %q, want %q", out, want)
	}

	out, err = run(t, "fmt", "--check", path)
	if !errors.Is(err, errUnformatted) {
		t.Errorf("check err = %v, want errUnformatted", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("check output = %q, want the path", out)
	}

	if _, err := run(t, "fmt", "--check=false", "-w", path); err != nil {
		t.Fatalf("fmt -w: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != want {
		t.Errorf("written note = %q", data)
	}
	if _, err := run(t, "fmt", "--check", "--write=false", path); err != nil {
		t.Errorf("formatted note still fails check: %v", err)
	}
}

// TestShow verifies the JSON form of a note and the missing-note error.
func TestShow(t *testing.T) {
	cfg := writeVault(t)

	out, err := run(t, "--config", cfg, "show", "--format", "json", "2025-01-15")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var w models.Workout
	if err := json.Unmarshal([]byte(out), &w); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if w.Date != "2025-01-15" || len(w.Exercises) != 1 || len(w.Exercises[0].Sets) != 2 {
		t.Errorf("workout = %+v", w)
	}

	if _, err := run(t, "--config", cfg, "show", "--format", "markdown", "2025-01-16"); err == nil {
		t.Error("expected error for a day without a note")
	}
	if _, err := run(t, "--config", cfg, "show", "--format", "pdf", "2025-01-15"); err == nil {
		t.Error("expected error for an unknown format")
	}
}

// TestWeek verifies the markdown weekly summary.
func TestWeek(t *testing.T) {
	cfg := writeVault(t)
	out, err := run(t, "--config", cfg, "week", "--json=false", "2025-01-17")
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	for _, want := range []string{"# Week of 2025-01-13", "Sessions: 1", "Volume: 1000", "Bench Press"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

// TestToday verifies a scheduled day and a rest day.
func TestToday(t *testing.T) {
	cfg := writeVault(t)
	out, err := run(t, "--config", cfg, "today", "--limit", "3", "2025-01-13")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !strings.Contains(out, "Push from ppl") || !strings.Contains(out, "Chest") {
		t.Errorf("unexpected plan:\n%s", out)
	}
	if n := strings.Count(out, "  - "); n != 3 {
		t.Errorf("got %d suggestions, want 3", n)
	}

	out, err = run(t, "--config", cfg, "today", "2025-01-14")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !strings.Contains(out, "rest day") {
		t.Errorf("unexpected plan: %s", out)
	}
}

// TestExercisesCommand verifies filtering, the row limit and adding a
// custom exercise.
func TestExercisesCommand(t *testing.T) {
	cfg := writeVault(t)
	out, err := run(t, "--config", cfg, "exercises", "search", "--any=false", "--force", "", "-m", "chest", "--limit", "2")
	if err != nil {
		t.Fatalf("exercises search: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[3], "... ") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "--config", cfg, "exercises", "add", "--type", "timed", "-m", "abs", "Hollow Hold")
	if err != nil {
		t.Fatalf("exercises add: %v", err)
	}
	if !strings.HasPrefix(out, "Added Hollow Hold (custom-") {
		t.Errorf("unexpected output: %q", out)
	}
	custom, err := catalog.LoadCustomFile(filepath.Join(filepath.Dir(cfg), "exercises.yaml"))
	if err != nil || len(custom) != 1 || !custom[0].TrackTime || len(custom[0].Muscles) != 1 || custom[0].Muscles[0] != "Abs" {
		t.Errorf("custom file = %+v, %v", custom, err)
	}

	if _, err := run(t, "--config", cfg, "exercises", "add", "--type", "timed", "hollow hold"); err == nil {
		t.Error("expected error for a duplicate name")
	}
	if _, err := run(t, "--config", cfg, "exercises", "add", "--type", "yoga", "Sun Salute"); err == nil {
		t.Error("expected error for an unknown type")
	}
}

// TestSplitsCommand lists templates and composes a custom one.
func TestSplitsCommand(t *testing.T) {
	cfg := writeVault(t)
	out, err := run(t, "--config", cfg, "splits", "list")
	if err != nil {
		t.Fatalf("splits list: %v", err)
	}
	if !strings.Contains(out, "* ppl\tPush/Pull/Legs") {
		t.Errorf("active template not starred:\n%s", out)
	}

	out, err = run(t, "--config", cfg, "splits", "compose", "--id", "mix", "Mix", "ppl-push", "upper-lower-lower")
	if err != nil {
		t.Fatalf("splits compose: %v", err)
	}
	if !strings.Contains(out, "Saved template mix with 2 splits") {
		t.Errorf("unexpected output: %q", out)
	}
	templates, err := splits.LoadCustomFile(filepath.Join(filepath.Dir(cfg), "templates.yaml"))
	if err != nil || len(templates) != 1 || !templates[0].IsComposite || templates[0].Splits[0].ID != "ppl-ppl-push" {
		t.Errorf("custom templates = %+v, %v", templates, err)
	}

	if _, err := run(t, "--config", cfg, "splits", "compose", "--id", "mix", "Again", "ppl-push"); err == nil {
		t.Error("expected error for a duplicate id")
	}
	if _, err := run(t, "--config", cfg, "splits", "compose", "--id", "other", "Bad", "nope"); err == nil {
		t.Error("expected error for an unknown split")
	}
}

// TestBadDate verifies date arguments are validated.
func TestBadDate(t *testing.T) {
	if _, err := run(t, "week", "15/01/2025"); err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Errorf("err = %v", err)
	}
}
