// Package vault stores workouts as markdown notes, one per day, under a
// workout folder of a notes directory.
package vault

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

const DefaultWorkoutFolder = "Workouts"

// Store reads and writes workout notes through a Persistence.
type Store struct {
	fs     Persistence
	folder string
}

// NewStore creates a Store for the workout folder of p. An empty folder
// means DefaultWorkoutFolder.
func NewStore(p Persistence, folder string) *Store {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		folder = DefaultWorkoutFolder
	}
	return &Store{fs: p, folder: folder}
}

func (s *Store) WorkoutFolder() string { return s.folder }

// Persistence returns the underlying note storage.
func (s *Store) Persistence() Persistence { return s.fs }

// PathFor returns the note path for a date: <folder>/<date>.md.
func (s *Store) PathFor(date string) string {
	return s.folder + "/" + date + ".md"
}

func (s *Store) EnsureFolder(ctx context.Context) error {
	ok, err := s.fs.Exists(ctx, s.folder)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.fs.CreateFolder(ctx, s.folder)
}

// Save encodes w and creates or overwrites its note. It returns the note path.
func (s *Store) Save(ctx context.Context, w models.Workout) (string, error) {
	return s.SaveText(ctx, w.Date, workoutmd.Encode(w))
}

// SaveText writes text as the note for date. It returns the note path.
func (s *Store) SaveText(ctx context.Context, date, text string) (string, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", fmt.Errorf("saving workout: invalid date %q", date)
	}
	if err := s.EnsureFolder(ctx); err != nil {
		return "", fmt.Errorf("saving workout %s: %w", date, err)
	}
	p := s.PathFor(date)
	if err := s.fs.Write(ctx, p, text); err != nil {
		return "", fmt.Errorf("saving workout %s: %w", date, err)
	}
	return p, nil
}

// LoadText returns the raw note for a date. A missing note is ErrNotFound.
func (s *Store) LoadText(ctx context.Context, date string) (string, error) {
	return s.fs.Read(ctx, s.PathFor(date))
}

// Load decodes the note for a date.
func (s *Store) Load(ctx context.Context, date string) (models.Workout, error) {
	text, err := s.LoadText(ctx, date)
	if err != nil {
		return models.Workout{}, err
	}
	return workoutmd.Decode(text, date), nil
}

// Note is a workout note found by listing.
type Note struct {
	Path string
	Date string // file name without extension
}

// ListFiles returns the markdown notes under the workout folder, recursively.
// A missing folder is an empty list.
func (s *Store) ListFiles(ctx context.Context) ([]Note, error) {
	files, err := s.fs.List(ctx, s.folder)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var notes []Note
	for _, f := range files {
		if !strings.HasSuffix(f, ".md") {
			continue
		}
		notes = append(notes, Note{Path: f, Date: strings.TrimSuffix(path.Base(f), ".md")})
	}
	return notes, nil
}

// LoadedWorkout pairs a decoded workout with its note path.
type LoadedWorkout struct {
	Path    string
	Workout models.Workout
}

// LoadRange decodes the workout notes dated within [start, end]. Dates are
// YYYY-MM-DD; an empty bound is open. Notes whose name is not a date, or
// whose frontmatter declares another type, are skipped. Results are sorted
// by date.
func (s *Store) LoadRange(ctx context.Context, start, end string) ([]LoadedWorkout, error) {
	notes, err := s.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	var out []LoadedWorkout
	for _, n := range notes {
		if _, err := time.Parse(models.DateLayout, n.Date); err != nil {
			continue
		}
		if (start != "" && n.Date < start) || (end != "" && n.Date > end) {
			continue
		}
		text, err := s.fs.Read(ctx, n.Path)
		if err != nil {
			return nil, err
		}
		if !IsWorkoutNote(text) {
			continue
		}
		out = append(out, LoadedWorkout{Path: n.Path, Workout: workoutmd.Decode(text, n.Date)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Workout.Date < out[j].Workout.Date })
	return out, nil
}

type noteMeta struct {
	Type string `yaml:"type"`
}

// IsWorkoutNote reports whether a note should be read as a workout. Notes
// without frontmatter, with unparseable frontmatter or without a type are
// kept; only a different declared type excludes a note.
func IsWorkoutNote(text string) bool {
	var meta noteMeta
	if _, err := frontmatter.Parse(strings.NewReader(text), &meta); err != nil {
		return true
	}
	return meta.Type == "" || strings.EqualFold(meta.Type, "workout")
}
