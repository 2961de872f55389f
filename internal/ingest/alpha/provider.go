package alpha

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/meltforce/gymbuddy/internal/ingest"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/vault"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

// Indexer receives every note the provider writes. May be nil.
type Indexer interface {
	IndexWorkout(ctx context.Context, w models.Workout, path string) (int64, error)
}

// Provider writes Alpha Progression exports into the vault.
type Provider struct {
	store  *vault.Store
	cat    Catalog
	index  Indexer
	unit   models.WeightUnit
	log    *slog.Logger
	dryRun bool
}

// NewProvider creates a new Alpha Progression ingest provider.
func NewProvider(store *vault.Store, cat Catalog, index Indexer, unit models.WeightUnit, log *slog.Logger) *Provider {
	return &Provider{store: store, cat: cat, index: index, unit: unit, log: log}
}

// DryRun makes Ingest report what it would write without touching the vault.
func (p *Provider) DryRun(v bool) { p.dryRun = v }

// Ingest parses a CSV export and writes one note per date. When a note for
// the date already exists, exercises it does not yet contain (by name) are
// appended to its text and its derived frontmatter keys are updated; the
// rest of the note is left as written. A note whose frontmatter never
// closes is skipped.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{SessionsReceived: len(sessions)}
	for _, s := range sessions {
		for _, ex := range s.Exercises {
			for _, set := range ex.Sets {
				if set.IsWarmup {
					result.WarmupsDropped++
				} else {
					result.SetsReceived++
				}
			}
		}
	}

	for _, w := range ToWorkouts(sessions, p.unit, p.cat) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		path := p.store.PathFor(w.Date)
		m, err := p.merge(ctx, w)
		if errors.Is(err, workoutmd.ErrUnterminatedFrontmatter) {
			p.log.Warn("skipping note with unterminated frontmatter", "path", path)
			result.WorkoutsUnchanged++
			result.Skipped = append(result.Skipped, path)
			continue
		}
		if err != nil {
			return result, err
		}
		if m.added == 0 {
			result.WorkoutsUnchanged++
			continue
		}
		if m.existed {
			result.WorkoutsMerged++
		} else {
			result.WorkoutsCreated++
		}
		result.ExercisesAdded += m.added

		if p.dryRun {
			result.Notes = append(result.Notes, path)
			continue
		}
		if path, err = p.store.SaveText(ctx, w.Date, m.text); err != nil {
			return result, fmt.Errorf("writing %s: %w", w.Date, err)
		}
		result.Notes = append(result.Notes, path)
		p.log.Info("wrote workout note", "path", path, "exercises_added", m.added, "merged", m.existed)

		if p.index != nil {
			n, err := p.index.IndexWorkout(ctx, m.workout, path)
			if err != nil {
				p.log.Warn("indexing imported note failed", "path", path, "error", err)
				continue
			}
			result.SetsIndexed += n
		}
	}
	return result, nil
}

// merged is a note ready to write: its text and the workout it holds.
type merged struct {
	text    string
	workout models.Workout
	added   int
	existed bool
}

// merge combines w with the existing note for its date, if any.
func (p *Provider) merge(ctx context.Context, w models.Workout) (merged, error) {
	text, err := p.store.LoadText(ctx, w.Date)
	if errors.Is(err, vault.ErrNotFound) {
		return merged{text: workoutmd.Encode(w), workout: w, added: len(w.Exercises)}, nil
	}
	if err != nil {
		return merged{}, fmt.Errorf("reading existing note %s: %w", w.Date, err)
	}

	existing := workoutmd.Decode(text, w.Date)
	have := make(map[string]bool, len(existing.Exercises))
	for _, ex := range existing.Exercises {
		have[strings.ToLower(ex.Name)] = true
	}

	var fresh []models.WorkoutExercise
	for _, ex := range w.Exercises {
		if !have[strings.ToLower(ex.Name)] {
			fresh = append(fresh, ex)
		}
	}
	if len(fresh) == 0 {
		return merged{text: text, workout: existing, existed: true}, nil
	}

	existing.Exercises = append(existing.Exercises, fresh...)
	if existing.Duration == nil {
		existing.Duration = w.Duration
	}
	if existing.Split == "" {
		existing.Split = w.Split
	}
	muscles := append([]string{}, existing.Muscles...)
	finalize(&existing, p.cat)
	existing.Muscles = union(muscles, existing.Muscles)

	out, err := workoutmd.AppendExercises(text, fresh, existing)
	if err != nil {
		return merged{}, err
	}
	return merged{text: out, workout: existing, added: len(fresh), existed: true}, nil
}

func union(a, b []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
