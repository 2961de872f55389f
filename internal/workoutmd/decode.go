package workoutmd

import (
	"regexp"
	"strings"

	"github.com/meltforce/gymbuddy/internal/models"
)

const frontmatterDelimiter = "---"

var (
	// frontmatterFieldRe matches: duration: 45
	frontmatterFieldRe = regexp.MustCompile(`^(\w+):\s*(.+)$`)

	// bracketListRe matches: [chest, triceps]
	bracketListRe = regexp.MustCompile(`\[(.+)\]`)
)

// Decode parses a workout note. The returned workout always carries
// fallbackDate as its date, whatever the note's frontmatter says, because
// the date is the note's identity and is owned by the caller.
//
// Decode never fails: lines it does not understand are ignored and cells
// that do not hold a number leave their field unset.
func Decode(text, fallbackDate string) models.Workout {
	return DecodeInto(text, models.Workout{Date: fallbackDate})
}

// DecodeInto parses a workout note on top of base. Metadata fields the note
// does not mention keep their base values. Exercises come from the note only.
// base is not modified.
func DecodeInto(text string, base models.Workout) models.Workout {
	w := base
	w.Muscles = append([]string{}, base.Muscles...)
	w.Exercises = []models.WorkoutExercise{}

	d := decoder{w: &w}
	for _, raw := range strings.Split(text, "\n") {
		d.line(strings.TrimSpace(raw))
	}
	d.closeExercise()
	return w
}

// decoder holds the line state machine. Frontmatter capture is toggled by
// "---" lines; outside it, "## " opens an exercise and "|" lines feed the
// current table.
type decoder struct {
	w *models.Workout

	inFrontmatter    bool
	frontmatterLines []string

	current *models.WorkoutExercise
	inTable bool
	headers []string
}

func (d *decoder) line(line string) {
	if line == "" {
		// A blank line ends the table but not the exercise.
		d.inTable = false
		return
	}

	if line == frontmatterDelimiter {
		if d.inFrontmatter {
			parseFrontmatter(d.frontmatterLines, d.w)
			d.inFrontmatter = false
		} else {
			d.inFrontmatter = true
			d.frontmatterLines = d.frontmatterLines[:0]
		}
		return
	}

	if d.inFrontmatter {
		d.frontmatterLines = append(d.frontmatterLines, line)
		return
	}

	if strings.HasPrefix(line, "## ") {
		d.closeExercise()
		d.current = &models.WorkoutExercise{
			Name: strings.TrimSpace(line[3:]),
			Sets: []models.WorkoutSet{},
		}
		d.inTable = false
		return
	}

	if strings.HasPrefix(line, "|") {
		d.tableRow(splitRow(line))
	}
}

// tableRow handles one table line. The first row of a table is its header,
// separator rows are skipped and every later row is a set.
func (d *decoder) tableRow(cells []string) {
	if len(cells) == 0 {
		return
	}
	switch {
	case isSeparator(cells[0]):
		return
	case !d.inTable:
		d.headers = cells
		d.inTable = true
	case d.current != nil && cells[0] != "Set":
		if set, ok := parseSetRow(cells, d.headers); ok {
			d.current.Sets = append(d.current.Sets, set)
		}
	}
}

func (d *decoder) closeExercise() {
	if d.current == nil {
		return
	}
	d.w.Exercises = append(d.w.Exercises, *d.current)
	d.current = nil
}

// splitRow splits a table line into trimmed cells. Only the empty pieces
// outside the leading and trailing pipes are dropped; empty cells inside the
// row keep their position so later cells stay aligned with their header.
func splitRow(line string) []string {
	pieces := strings.Split(line, "|")
	for i := range pieces {
		pieces[i] = strings.TrimSpace(pieces[i])
	}
	if len(pieces) > 0 && pieces[0] == "" {
		pieces = pieces[1:]
	}
	if len(pieces) > 0 && pieces[len(pieces)-1] == "" {
		pieces = pieces[:len(pieces)-1]
	}
	return pieces
}

// isSeparator reports whether a cell is a table rule such as "-----" or ":---:".
func isSeparator(cell string) bool {
	if !strings.Contains(cell, "-") {
		return false
	}
	return strings.Trim(cell, "-:") == ""
}

// parseSetRow converts a data row into a set. Rows whose first cell is not
// an integer are dropped.
func parseSetRow(cells, headers []string) (models.WorkoutSet, bool) {
	setNumber, ok := parseIntPrefix(cells[0])
	if !ok {
		return models.WorkoutSet{}, false
	}
	set := models.WorkoutSet{SetNumber: setNumber}

	for i := 1; i < len(headers) && i < len(cells); i++ {
		value := cells[i]
		if value == "" {
			continue
		}
		switch strings.ToLower(headers[i]) {
		case "weight":
			if f, ok := parseFloatPrefix(value); ok {
				set.Weight = &f
			}
		case "reps":
			if n, ok := parseIntPrefix(value); ok {
				set.Reps = &n
			}
		case "time":
			if n, ok := parseSeconds(value); ok {
				set.Time = &n
			}
		case "rpe":
			if f, ok := parseFloatPrefix(value); ok {
				set.RPE = &f
			}
		}
	}
	return set, true
}

// parseFrontmatter applies recognized "key: value" lines to w. Unknown keys,
// including date, are ignored.
func parseFrontmatter(lines []string, w *models.Workout) {
	for _, line := range lines {
		m := frontmatterFieldRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key, value := m[1], m[2]
		switch key {
		case "duration":
			if n, ok := parseIntPrefix(value); ok {
				w.Duration = &n
			}
		case "muscles":
			if lm := bracketListRe.FindStringSubmatch(value); lm != nil {
				w.Muscles = splitList(lm[1])
			}
		case "volume":
			if n, ok := parseIntPrefix(value); ok {
				v := float64(n)
				w.Volume = &v
			}
		case "prs":
			if n, ok := parseIntPrefix(value); ok {
				w.PRs = &n
			}
		case "split":
			w.Split = strings.TrimSpace(value)
		}
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
