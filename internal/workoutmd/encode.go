package workoutmd

import (
	"strconv"
	"strings"

	"github.com/meltforce/gymbuddy/internal/models"
)

type encodeConfig struct {
	frontmatter bool
}

// EncodeOption adjusts Encode output.
type EncodeOption func(*encodeConfig)

// WithoutFrontmatter omits the metadata block. Used when a workout is
// appended to another note, such as a daily note.
func WithoutFrontmatter() EncodeOption {
	return func(c *encodeConfig) { c.frontmatter = false }
}

// Encode renders a workout as a markdown note.
func Encode(w models.Workout, opts ...EncodeOption) string {
	cfg := encodeConfig{frontmatter: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var lines []string
	if cfg.frontmatter {
		lines = append(lines, frontmatterLines(w)...)
	}
	lines = append(lines, "")

	for _, ex := range w.Exercises {
		lines = append(lines, "## "+ex.Name, "")
		lines = append(lines, tableLines(ex.Sets)...)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func frontmatterLines(w models.Workout) []string {
	lines := []string{
		frontmatterDelimiter,
		"type: workout",
		"date: " + w.Date,
	}
	for _, f := range metadataFields(w) {
		lines = append(lines, f.key+": "+f.value)
	}
	return append(lines, frontmatterDelimiter)
}

type field struct{ key, value string }

// metadataFields lists the derived frontmatter keys w sets, in note order.
func metadataFields(w models.Workout) []field {
	var out []field
	if w.Duration != nil {
		out = append(out, field{"duration", strconv.Itoa(*w.Duration)})
	}
	if len(w.Muscles) > 0 {
		out = append(out, field{"muscles", "[" + strings.Join(w.Muscles, ", ") + "]"})
	}
	if w.Volume != nil {
		out = append(out, field{"volume", formatFloat(w.Volume)})
	}
	if w.PRs != nil {
		out = append(out, field{"prs", strconv.Itoa(*w.PRs)})
	}
	if w.Split != "" {
		out = append(out, field{"split", w.Split})
	}
	return out
}

// tableLines renders the set table, or nothing when no set records a field
// the table can carry.
func tableLines(sets []models.WorkoutSet) []string {
	cols := activeColumns(sets)
	if len(cols) == 0 {
		return nil
	}

	headers := make([]string, 0, len(cols)+1)
	seps := make([]string, 0, len(cols)+1)
	headers = append(headers, "Set")
	seps = append(seps, separatorCell)
	for _, c := range cols {
		headers = append(headers, c.header)
		seps = append(seps, separatorCell)
	}

	lines := make([]string, 0, len(sets)+2)
	lines = append(lines, tableRow(headers), "|"+strings.Join(seps, "|")+"|")

	cells := make([]string, 0, len(cols)+1)
	for _, s := range sets {
		cells = append(cells[:0], strconv.Itoa(s.SetNumber))
		for _, c := range cols {
			cells = append(cells, c.format(s))
		}
		lines = append(lines, tableRow(cells))
	}
	return lines
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
