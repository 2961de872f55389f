package workoutmd

import (
	"errors"
	"strings"

	"github.com/meltforce/gymbuddy/internal/models"
)

// ErrUnterminatedFrontmatter is returned by AppendExercises for a note with
// an odd number of "---" lines. Anything appended to it would be read as
// frontmatter.
var ErrUnterminatedFrontmatter = errors.New("note has unterminated frontmatter")

// AppendExercises adds exercises to the end of an existing note and leaves
// the rest of its text as it was. The derived keys of meta (duration,
// muscles, volume, prs, split) are written into the note's first
// frontmatter block: existing lines for those keys are replaced, missing
// ones are added before the closing delimiter and every other line is kept.
// A note without frontmatter keeps having none.
func AppendExercises(text string, exercises []models.WorkoutExercise, meta models.Workout) (string, error) {
	lines := strings.Split(text, "\n")
	var delims []int
	for i, l := range lines {
		if strings.TrimSpace(l) == frontmatterDelimiter {
			delims = append(delims, i)
		}
	}
	if len(delims)%2 != 0 {
		return text, ErrUnterminatedFrontmatter
	}
	if len(delims) > 0 {
		lines = rewriteFrontmatter(lines, delims[0], delims[1], metadataFields(meta))
	}

	out := strings.Join(lines, "\n")
	if len(exercises) == 0 {
		return out, nil
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out + Encode(models.Workout{Exercises: exercises}, WithoutFrontmatter()), nil
}

// rewriteFrontmatter updates the block between the delimiter lines start and end.
func rewriteFrontmatter(lines []string, start, end int, fields []field) []string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.key] = f.value
	}

	out := make([]string, 0, len(lines)+len(fields))
	out = append(out, lines[:start+1]...)
	written := make(map[string]bool)
	for _, l := range lines[start+1 : end] {
		m := frontmatterFieldRe.FindStringSubmatch(strings.TrimSpace(l))
		if m != nil {
			if v, ok := values[m[1]]; ok {
				if !written[m[1]] {
					out = append(out, m[1]+": "+v)
					written[m[1]] = true
				}
				continue
			}
		}
		out = append(out, l)
	}
	for _, f := range fields {
		if !written[f.key] {
			out = append(out, f.key+": "+f.value)
		}
	}
	return append(out, lines[end:]...)
}
