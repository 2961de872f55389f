// Package indexer rebuilds the Postgres history index from the workout notes
// in the vault.
package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/storage"
	"github.com/meltforce/gymbuddy/internal/vault"
)

// Index is the part of the storage layer the indexer writes to.
type Index interface {
	ReplaceWorkout(ctx context.Context, w models.Workout, path string) (int64, error)
	PruneWorkouts(ctx context.Context, keep []string) (int64, error)
	InsertIndexRun(ctx context.Context, run storage.IndexRun) (int64, error)
	FinishIndexRun(ctx context.Context, id int64, run storage.IndexRun) error
}

// Stats tracks indexing progress.
type Stats struct {
	NotesSeen    int   `json:"notes_seen"`
	NotesIndexed int   `json:"notes_indexed"`
	NotesSkipped int   `json:"notes_skipped"`
	NotesRemoved int64 `json:"notes_removed"`
	SetsIndexed  int64 `json:"sets_indexed"`

	Failed []string `json:"failed,omitempty"`
}

// Progress is reported after each note during a run.
type Progress struct {
	Step  int    `json:"step"`
	Total int    `json:"total"`
	Path  string `json:"path"`
}

// Indexer walks the workout folder and mirrors every note into the index.
type Indexer struct {
	index  Index
	store  *vault.Store
	log    *slog.Logger
	dryRun bool
}

// New creates a new Indexer. In dry-run mode nothing is written and only
// counts are collected.
func New(index Index, store *vault.Store, log *slog.Logger, dryRun bool) *Indexer {
	return &Indexer{index: index, store: store, log: log, dryRun: dryRun}
}

// Run indexes every workout note and prunes rows whose note is gone. source
// labels the index run ("startup", "api", "cli"). Notes that fail to index
// are logged, counted and do not stop the run.
func (ix *Indexer) Run(ctx context.Context, source string) (*Stats, error) {
	return ix.RunWithProgress(ctx, source, nil)
}

// RunWithProgress is Run with a callback invoked after every note. progress
// may be nil.
func (ix *Indexer) RunWithProgress(ctx context.Context, source string, progress func(Progress)) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	var runID int64
	if !ix.dryRun {
		id, err := ix.index.InsertIndexRun(ctx, storage.IndexRun{Source: source, Status: "running"})
		if err != nil {
			return stats, fmt.Errorf("recording index run: %w", err)
		}
		runID = id
	}

	runErr := ix.run(ctx, stats, progress)

	if !ix.dryRun {
		run := stats.toRun(source, time.Since(start), runErr)
		if err := ix.index.FinishIndexRun(context.WithoutCancel(ctx), runID, run); err != nil {
			ix.log.Error("failed to finish index run", "id", runID, "error", err)
		}
	}

	if runErr != nil {
		return stats, runErr
	}
	ix.log.Info("index complete",
		"source", source,
		"seen", stats.NotesSeen,
		"indexed", stats.NotesIndexed,
		"skipped", stats.NotesSkipped,
		"removed", stats.NotesRemoved,
		"sets", stats.SetsIndexed,
		"dry_run", ix.dryRun,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return stats, nil
}

func (ix *Indexer) run(ctx context.Context, stats *Stats, progress func(Progress)) error {
	notes, err := ix.store.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}
	stats.NotesSeen = len(notes)

	loaded, err := ix.store.LoadRange(ctx, "", "")
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	stats.NotesSkipped = len(notes) - len(loaded)

	keep := make([]string, 0, len(loaded))
	for i, lw := range loaded {
		if err := ctx.Err(); err != nil {
			return err
		}
		keep = append(keep, lw.Workout.Date)
		if progress != nil {
			progress(Progress{Step: i + 1, Total: len(loaded), Path: lw.Path})
		}

		if ix.dryRun {
			stats.NotesIndexed++
			stats.SetsIndexed += int64(countSets(lw.Workout))
			continue
		}

		n, err := ix.index.ReplaceWorkout(ctx, lw.Workout, lw.Path)
		if err != nil {
			ix.log.Warn("index failed", "path", lw.Path, "error", err)
			stats.Failed = append(stats.Failed, lw.Path)
			stats.NotesSkipped++
			continue
		}
		stats.NotesIndexed++
		stats.SetsIndexed += n
	}

	if ix.dryRun {
		return nil
	}
	removed, err := ix.index.PruneWorkouts(ctx, keep)
	if err != nil {
		return fmt.Errorf("pruning index: %w", err)
	}
	stats.NotesRemoved = removed
	return nil
}

// IndexWorkout indexes a single note already written to path.
func (ix *Indexer) IndexWorkout(ctx context.Context, w models.Workout, path string) (int64, error) {
	if ix.dryRun {
		return int64(countSets(w)), nil
	}
	n, err := ix.index.ReplaceWorkout(ctx, w, path)
	if err != nil {
		return 0, fmt.Errorf("indexing %s: %w", path, err)
	}
	return n, nil
}

func (s *Stats) toRun(source string, elapsed time.Duration, runErr error) storage.IndexRun {
	ms := int(elapsed.Milliseconds())
	run := storage.IndexRun{
		Source:       source,
		Status:       "success",
		NotesSeen:    s.NotesSeen,
		NotesIndexed: s.NotesIndexed,
		NotesSkipped: s.NotesSkipped,
		NotesRemoved: int(s.NotesRemoved),
		SetsIndexed:  s.SetsIndexed,
		DurationMs:   &ms,
	}
	if runErr != nil {
		msg := runErr.Error()
		run.Status = "error"
		if errors.Is(runErr, context.Canceled) {
			run.Status = "cancelled"
		}
		run.ErrorMessage = &msg
	}
	if len(s.Failed) > 0 {
		if data, err := json.Marshal(map[string][]string{"failed": s.Failed}); err == nil {
			raw := json.RawMessage(data)
			run.Metadata = &raw
		}
	}
	return run
}

func countSets(w models.Workout) int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}
