// Package summary aggregates workouts into weekly training reports.
package summary

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/vault"
)

// WeekStart returns the Monday of the week containing date.
func WeekStart(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// MuscleCount is how many sessions in the week hit a muscle.
type MuscleCount struct {
	Muscle   string `json:"muscle"`
	Sessions int    `json:"sessions"`
}

// ExerciseStats summarizes one exercise across the week.
type ExerciseStats struct {
	Name       string   `json:"name"`
	Sessions   int      `json:"sessions"`
	Sets       int      `json:"sets"`
	Reps       int      `json:"reps"`
	BestWeight *float64 `json:"best_weight,omitempty"`
	Volume     float64  `json:"volume"`
}

// Week is the aggregate of the workouts dated within one Monday-to-Sunday week.
type Week struct {
	Start           string          `json:"start"`
	End             string          `json:"end"`
	Sessions        int             `json:"sessions"`
	Dates           []string        `json:"dates"`
	DurationMinutes int             `json:"duration_minutes"`
	Sets            int             `json:"sets"`
	Reps            int             `json:"reps"`
	Volume          float64         `json:"volume"`
	Muscles         []MuscleCount   `json:"muscles"`
	Exercises       []ExerciseStats `json:"exercises"`
}

// Build aggregates the workouts that fall in the week starting at start.
// Volume is recomputed from sets rather than read from frontmatter.
func Build(workouts []models.Workout, start time.Time) Week {
	start = WeekStart(start)
	end := start.AddDate(0, 0, 6)
	wk := Week{
		Start:     start.Format(models.DateLayout),
		End:       end.Format(models.DateLayout),
		Dates:     []string{},
		Muscles:   []MuscleCount{},
		Exercises: []ExerciseStats{},
	}

	muscleIdx := make(map[string]int)
	exIdx := make(map[string]int)

	sorted := append([]models.Workout{}, workouts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	for _, w := range sorted {
		if w.Date < wk.Start || w.Date > wk.End {
			continue
		}
		wk.Sessions++
		wk.Dates = append(wk.Dates, w.Date)
		if w.Duration != nil {
			wk.DurationMinutes += *w.Duration
		}

		for _, m := range uniq(w.Muscles) {
			i, ok := muscleIdx[m]
			if !ok {
				i = len(wk.Muscles)
				muscleIdx[m] = i
				wk.Muscles = append(wk.Muscles, MuscleCount{Muscle: m})
			}
			wk.Muscles[i].Sessions++
		}

		seenEx := make(map[string]bool)
		for _, ex := range w.Exercises {
			i, ok := exIdx[ex.Name]
			if !ok {
				i = len(wk.Exercises)
				exIdx[ex.Name] = i
				wk.Exercises = append(wk.Exercises, ExerciseStats{Name: ex.Name})
			}
			st := &wk.Exercises[i]
			if !seenEx[ex.Name] {
				seenEx[ex.Name] = true
				st.Sessions++
			}
			for _, s := range ex.Sets {
				st.Sets++
				wk.Sets++
				if s.Reps != nil {
					st.Reps += *s.Reps
					wk.Reps += *s.Reps
				}
				if s.Weight != nil {
					if st.BestWeight == nil || *s.Weight > *st.BestWeight {
						best := *s.Weight
						st.BestWeight = &best
					}
					if s.Reps != nil {
						v := *s.Weight * float64(*s.Reps)
						st.Volume += v
						wk.Volume += v
					}
				}
			}
		}
	}

	sort.SliceStable(wk.Muscles, func(i, j int) bool {
		if wk.Muscles[i].Sessions != wk.Muscles[j].Sessions {
			return wk.Muscles[i].Sessions > wk.Muscles[j].Sessions
		}
		return wk.Muscles[i].Muscle < wk.Muscles[j].Muscle
	})
	return wk
}

func uniq(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// RenderMarkdown formats a week as a markdown report.
func RenderMarkdown(wk Week) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Week of %s\n\n", wk.Start)
	if wk.Sessions == 0 {
		fmt.Fprintf(&b, "No workouts logged between %s and %s.\n", wk.Start, wk.End)
		return b.String()
	}

	fmt.Fprintf(&b, "- Sessions: %d (%s)\n", wk.Sessions, strings.Join(wk.Dates, ", "))
	if wk.DurationMinutes > 0 {
		fmt.Fprintf(&b, "- Duration: %d min\n", wk.DurationMinutes)
	}
	fmt.Fprintf(&b, "- Sets: %d\n", wk.Sets)
	fmt.Fprintf(&b, "- Reps: %d\n", wk.Reps)
	fmt.Fprintf(&b, "- Volume: %s\n", formatNumber(wk.Volume))

	if len(wk.Muscles) > 0 {
		b.WriteString("\n## Muscles\n\n")
		for _, m := range wk.Muscles {
			fmt.Fprintf(&b, "- %s: %d\n", m.Muscle, m.Sessions)
		}
	}

	if len(wk.Exercises) > 0 {
		b.WriteString("\n## Exercises\n\n")
		b.WriteString("| Exercise | Sessions | Sets | Reps | Best | Volume |\n")
		b.WriteString("|-----|-----|-----|-----|-----|-----|\n")
		for _, ex := range wk.Exercises {
			best := ""
			if ex.BestWeight != nil {
				best = formatNumber(*ex.BestWeight)
			}
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %s | %s |\n",
				ex.Name, ex.Sessions, ex.Sets, ex.Reps, best, formatNumber(ex.Volume))
		}
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WeekSource loads decoded workout notes for a date range.
type WeekSource interface {
	LoadRange(ctx context.Context, start, end string) ([]vault.LoadedWorkout, error)
}

// Load reads the notes of the week containing day and builds its summary.
func Load(ctx context.Context, src WeekSource, day time.Time) (Week, error) {
	start := WeekStart(day)
	loaded, err := src.LoadRange(ctx,
		start.Format(models.DateLayout), start.AddDate(0, 0, 6).Format(models.DateLayout))
	if err != nil {
		return Week{}, fmt.Errorf("loading week of %s: %w", start.Format(models.DateLayout), err)
	}
	workouts := make([]models.Workout, 0, len(loaded))
	for _, lw := range loaded {
		workouts = append(workouts, lw.Workout)
	}
	return Build(workouts, start), nil
}
