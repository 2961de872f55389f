package render

import (
	"strings"
	"testing"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

// TestHTMLRendersSetTable verifies an encoded workout becomes an HTML table
// with a heading per exercise and a metadata table.
func TestHTMLRendersSetTable(t *testing.T) {
	w := models.Workout{
		Date:    "2025-01-15",
		Muscles: []string{"Chest"},
		Exercises: []models.WorkoutExercise{{
			Name: "Bench Press",
			Sets: []models.WorkoutSet{{SetNumber: 1, Weight: models.Float(135), Reps: models.Int(10)}},
		}},
	}
	out, err := Note(workoutmd.Encode(w))
	if err != nil {
		t.Fatalf("Note: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<table class="frontmatter">`,
		"<th>muscles</th><td>[Chest]</td>",
		"Bench Press</h2>",
		"<th>Weight</th>",
		"<td>135</td>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<hr") {
		t.Errorf("frontmatter rendered as a rule:\n%s", html)
	}
}

// TestHTMLEscapesMetadata verifies frontmatter values are escaped.
func TestHTMLEscapesMetadata(t *testing.T) {
	out, err := HTML([]byte("---\nsplit: <b>push</b>\n---\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<b>") {
		t.Errorf("unescaped: %s", out)
	}
}

// TestHTMLUnterminatedFrontmatter verifies an unclosed block is left as body.
func TestHTMLUnterminatedFrontmatter(t *testing.T) {
	out, err := HTML([]byte("---\ntype: workout\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "frontmatter") {
		t.Errorf("unexpected metadata table: %s", out)
	}
}

// TestNoteRejectsOtherTypes verifies non-workout notes are refused.
func TestNoteRejectsOtherTypes(t *testing.T) {
	if _, err := Note("---\ntype: daily\n---\n# Hi\n"); err == nil {
		t.Error("expected error")
	}
}
