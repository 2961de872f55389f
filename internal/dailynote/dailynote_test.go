package dailynote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/vault"
)

// TestFormatDate covers each token and bracketed literals.
func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC) // Friday
	tests := map[string]string{
		"YYYY-MM-DD":            "2025-03-07",
		"YY.M.D":                "25.3.7",
		"YYYY/MMMM/DD":          "2025/March/07",
		"MMM D, YYYY":           "Mar 7, 2025",
		"dddd":                  "Friday",
		"ddd DD":                "Fri 07",
		"[Week of] YYYY-MM-DD":  "Week of 2025-03-07",
		"YYYY-MM-DD [log]":      "2025-03-07 log",
		"YYYY-MM-DD_[unclosed":  "2025-03-07_[unclosed",
	}
	for format, want := range tests {
		if got := FormatDate(format, d); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", format, got, want)
		}
	}
}

// TestPath verifies folder joining and the default format.
func TestPath(t *testing.T) {
	tests := []struct {
		folder, format, want string
	}{
		{"", "", "2025-01-15.md"},
		{"Daily", "YYYY-MM-DD", "Daily/2025-01-15.md"},
		{"/Journal/", "YYYY/MM/DD", "Journal/2025/01/15.md"},
	}
	for _, tt := range tests {
		got, err := Path(tt.folder, tt.format, "2025-01-15")
		if err != nil || got != tt.want {
			t.Errorf("Path(%q, %q) = %q, %v; want %q", tt.folder, tt.format, got, err, tt.want)
		}
	}
	if _, err := Path("", "", "yesterday"); err == nil {
		t.Error("expected error for bad date")
	}
}

// TestHeadingPosition verifies matching at any level, ignoring case and the
// configured #s.
func TestHeadingPosition(t *testing.T) {
	content := "# Journal\n\nSome text\n### workout\nold\n"
	pos := HeadingPosition(content, "## Workout")
	if want := strings.Index(content, "old"); pos != want {
		t.Errorf("pos = %d, want %d", pos, want)
	}
	if !HasHeading(content, "Workout") {
		t.Error("HasHeading = false")
	}
	if HasHeading(content, "Workouts") {
		t.Error("prefix should not match")
	}
	if HasHeading("Workout\n", "Workout") {
		t.Error("plain text is not a heading")
	}
}

// TestAppendToHeading covers insertion with and without following content.
func TestAppendToHeading(t *testing.T) {
	t.Run("content follows", func(t *testing.T) {
		got, ok := AppendToHeading("# Day\n## Workout\nexisting\n", "## Workout", "S")
		if !ok {
			t.Fatal("heading not found")
		}
		if want := "# Day\n## Workout\n\nS\nexisting\n"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
	t.Run("blank line follows", func(t *testing.T) {
		got, _ := AppendToHeading("## Workout\n\n\nnext\n", "Workout", "S")
		if want := "## Workout\nS\n\n\nnext\n"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
	t.Run("heading is last line", func(t *testing.T) {
		got, ok := AppendToHeading("# Day\n## Workout", "Workout", "S")
		if !ok {
			t.Fatal("heading not found")
		}
		if want := "# Day\n## Workout\nS\n"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
	t.Run("missing heading", func(t *testing.T) {
		got, ok := AppendToHeading("# Day\n", "Workout", "S")
		if ok || got != "# Day\n" {
			t.Errorf("got %q, %v", got, ok)
		}
	})
}

// TestAppendToEnd verifies trimming and the blank-line separator.
func TestAppendToEnd(t *testing.T) {
	if got := AppendToEnd("# Day\n\n\n", "S"); got != "# Day\n\nS\n" {
		t.Errorf("got %q", got)
	}
}

// TestSummary verifies the appended form has no frontmatter.
func TestSummary(t *testing.T) {
	w := models.Workout{
		Date:     "2025-01-15",
		Duration: models.Int(30),
		Exercises: []models.WorkoutExercise{{
			Name: "Squat",
			Sets: []models.WorkoutSet{{SetNumber: 1, Weight: models.Float(225), Reps: models.Int(5)}},
		}},
	}
	got := Summary(w)
	if strings.Contains(got, "---\n") || strings.Contains(got, "duration") {
		t.Errorf("summary has frontmatter:\n%s", got)
	}
	if !strings.HasPrefix(got, "## Squat") {
		t.Errorf("summary = %q", got)
	}
}

// TestIntegratorAppend verifies the read-modify-write cycle on disk.
func TestIntegratorAppend(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Daily"), 0755); err != nil {
		t.Fatal(err)
	}
	notePath := filepath.Join(root, "Daily", "2025-01-15.md")
	if err := os.WriteFile(notePath, []byte("# Wednesday\n\n## Workout\n\n## Notes\nslept well\n"), 0644); err != nil {
		t.Fatal(err)
	}

	integ := NewIntegrator(vault.NewDirFS(root), "Daily", "YYYY-MM-DD", "## Workout")
	w := models.Workout{
		Date: "2025-01-15",
		Exercises: []models.WorkoutExercise{{
			Name: "Deadlift",
			Sets: []models.WorkoutSet{{SetNumber: 1, Weight: models.Float(315), Reps: models.Int(3)}},
		}},
	}
	res, err := integ.Append(context.Background(), w)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !res.UnderHeading || res.Path != "Daily/2025-01-15.md" {
		t.Errorf("result = %+v", res)
	}
	data, _ := os.ReadFile(notePath)
	got := string(data)
	if strings.Index(got, "## Deadlift") > strings.Index(got, "## Notes") {
		t.Errorf("summary not under heading:\n%s", got)
	}

	// Without the heading the summary goes to the end.
	other := NewIntegrator(vault.NewDirFS(root), "Daily", "", "## Training")
	res, err = other.Append(context.Background(), w)
	if err != nil {
		t.Fatal(err)
	}
	if res.UnderHeading {
		t.Error("expected append at end")
	}
	data, _ = os.ReadFile(notePath)
	if !strings.HasSuffix(string(data), "| 1 | 315 | 3 |\n") {
		t.Errorf("summary not at end:\n%s", data)
	}
}

// TestIntegratorMissingNote verifies a missing daily note is ErrNotFound.
func TestIntegratorMissingNote(t *testing.T) {
	integ := NewIntegrator(vault.NewDirFS(t.TempDir()), "Daily", "", "Workout")
	_, err := integ.Append(context.Background(), models.Workout{Date: "2025-01-15"})
	if !errors.Is(err, vault.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
