// Package dailynote appends workout summaries to daily notes.
package dailynote

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/vault"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

// Longest tokens first so MMMM wins over MM.
var dateTokens = []struct {
	token  string
	format func(time.Time) string
}{
	{"YYYY", func(t time.Time) string { return strconv.Itoa(t.Year()) }},
	{"YY", func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) }},
	{"MMMM", func(t time.Time) string { return t.Month().String() }},
	{"MMM", func(t time.Time) string { return t.Month().String()[:3] }},
	{"MM", func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"DD", func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
	{"dddd", func(t time.Time) string { return t.Weekday().String() }},
	{"ddd", func(t time.Time) string { return t.Weekday().String()[:3] }},
}

// FormatDate renders date with a moment-style format such as "YYYY-MM-DD"
// or "YYYY/MMMM/DD-dddd". Text in square brackets is copied literally.
func FormatDate(format string, date time.Time) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			if end := strings.IndexByte(format[i:], ']'); end > 0 {
				b.WriteString(format[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(format[i:], tok.token) {
				b.WriteString(tok.format(date))
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}

// Path returns the daily note path for a YYYY-MM-DD date.
func Path(folder, format, date string) (string, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", date, err)
	}
	if format == "" {
		format = "YYYY-MM-DD"
	}
	name := FormatDate(format, d) + ".md"
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name, nil
	}
	return folder + "/" + name, nil
}

var headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

func normalizeHeading(heading string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(heading), "#"))
}

// HasHeading reports whether content has the heading at any level.
func HasHeading(content, heading string) bool {
	return HeadingPosition(content, heading) >= 0
}

// HeadingPosition returns the byte offset just past the line of the first
// heading whose text matches heading, case-insensitively and at any level.
// Leading #s in heading are ignored. It returns -1 when there is none.
func HeadingPosition(content, heading string) int {
	want := strings.ToLower(normalizeHeading(heading))
	offset := 0
	for _, line := range strings.Split(content, "\n") {
		next := offset + len(line) + 1
		if m := headingLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if strings.ToLower(strings.TrimSpace(m[2])) == want {
				return next
			}
		}
		offset = next
	}
	return -1
}

// AppendToHeading inserts summary right after the heading line. ok is false
// when the heading is missing; content is then returned unchanged.
func AppendToHeading(content, heading, summary string) (string, bool) {
	pos := HeadingPosition(content, heading)
	if pos < 0 {
		return content, false
	}
	if pos > len(content) {
		// Heading on the last line without a trailing newline.
		content += "\n"
	}
	before, after := content[:pos], content[pos:]
	prefix := ""
	if strings.TrimSpace(after) != "" && !strings.HasPrefix(after, "\n\n") {
		prefix = "\n"
	}
	return before + prefix + summary + "\n" + after, true
}

// AppendToEnd appends summary after the trimmed content, separated by a
// blank line.
func AppendToEnd(content, summary string) string {
	return strings.TrimSpace(content) + "\n\n" + summary + "\n"
}

// Summary is the text appended to a daily note: the workout without its
// frontmatter.
func Summary(w models.Workout) string {
	return strings.TrimSpace(workoutmd.Encode(w, workoutmd.WithoutFrontmatter()))
}

// Integrator appends workouts to the daily notes of a vault.
type Integrator struct {
	fs      vault.Persistence
	folder  string
	format  string
	heading string
}

// NewIntegrator creates an Integrator writing daily notes under folder.
func NewIntegrator(p vault.Persistence, folder, format, heading string) *Integrator {
	return &Integrator{fs: p, folder: folder, format: format, heading: heading}
}

// Result reports where a summary went.
type Result struct {
	Path         string `json:"path"`
	UnderHeading bool   `json:"under_heading"`
}

// Append adds the workout summary to the daily note of its date, under the
// configured heading when present and at the end otherwise. A missing daily
// note is vault.ErrNotFound.
func (i *Integrator) Append(ctx context.Context, w models.Workout) (Result, error) {
	p, err := Path(i.folder, i.format, w.Date)
	if err != nil {
		return Result{}, err
	}
	content, err := i.fs.Read(ctx, p)
	if err != nil {
		return Result{}, fmt.Errorf("reading daily note: %w", err)
	}

	summary := Summary(w)
	updated, under := content, false
	if i.heading != "" {
		updated, under = AppendToHeading(content, i.heading, summary)
	}
	if !under {
		updated = AppendToEnd(content, summary)
	}
	if err := i.fs.Write(ctx, p, updated); err != nil {
		return Result{}, fmt.Errorf("writing daily note: %w", err)
	}
	return Result{Path: p, UnderHeading: under}, nil
}
