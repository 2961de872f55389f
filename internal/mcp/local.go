package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/config"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/splits"
	"github.com/meltforce/gymbuddy/internal/storage"
	"github.com/meltforce/gymbuddy/internal/summary"
	"github.com/meltforce/gymbuddy/internal/vault"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

// ErrNoIndex is returned by index-backed queries when no index is wired.
var ErrNoIndex = errors.New("history index is not configured")

// Index is the read side of the history index used by Local.
type Index interface {
	QueryWorkouts(ctx context.Context, start, end time.Time) ([]models.WorkoutRow, error)
	QueryWorkoutSets(ctx context.Context, start, end time.Time, exercise string) ([]models.WorkoutSetRow, error)
	QueryExerciseBests(ctx context.Context, start, end time.Time) ([]storage.ExerciseBest, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
}

// Compile-time checks.
var (
	_ DataSource = (*Local)(nil)
	_ Index      = (*storage.DB)(nil)
)

// Local answers from the vault, the catalog and, when present, the index.
type Local struct {
	index     Index
	store     *vault.Store
	cat       *catalog.Catalog
	templates []models.SplitTemplate
	training  config.TrainingConfig
}

// NewLocal creates a Local data source. index may be nil; index-backed
// queries then fail with ErrNoIndex.
func NewLocal(index Index, store *vault.Store, cat *catalog.Catalog, templates []models.SplitTemplate, training config.TrainingConfig) *Local {
	return &Local{index: index, store: store, cat: cat, templates: templates, training: training}
}

func (l *Local) GetWorkout(ctx context.Context, date string) (*models.Workout, error) {
	text, err := l.GetWorkoutMarkdown(ctx, date)
	if err != nil {
		return nil, err
	}
	w := workoutmd.Decode(text, date)
	return &w, nil
}

func (l *Local) GetWorkoutMarkdown(ctx context.Context, date string) (string, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date (YYYY-MM-DD): %s", date)
	}
	text, err := l.store.LoadText(ctx, date)
	if errors.Is(err, vault.ErrNotFound) {
		return "", fmt.Errorf("no workout on %s", date)
	}
	return text, err
}

func (l *Local) QueryWorkouts(ctx context.Context, start, end time.Time) ([]models.WorkoutRow, error) {
	if l.index == nil {
		return nil, ErrNoIndex
	}
	return l.index.QueryWorkouts(ctx, start, end)
}

func (l *Local) QueryWorkoutSets(ctx context.Context, start, end time.Time, exerciseFilter string) ([]models.WorkoutSetRow, error) {
	if l.index == nil {
		return nil, ErrNoIndex
	}
	return l.index.QueryWorkoutSets(ctx, start, end, exerciseFilter)
}

func (l *Local) QueryExerciseBests(ctx context.Context, start, end time.Time) ([]storage.ExerciseBest, error) {
	if l.index == nil {
		return nil, ErrNoIndex
	}
	return l.index.QueryExerciseBests(ctx, start, end)
}

func (l *Local) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error) {
	if l.index == nil {
		return nil, ErrNoIndex
	}
	return l.index.GetTrainingSummary(ctx, start, end, bucket)
}

func (l *Local) GetWeeklySummary(ctx context.Context, day time.Time) (*summary.Week, error) {
	wk, err := summary.Load(ctx, l.store, day)
	if err != nil {
		return nil, err
	}
	return &wk, nil
}

func (l *Local) SearchExercises(_ context.Context, q catalog.Query, limit int) ([]models.Exercise, error) {
	result := l.cat.Filter(q)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	if result == nil {
		result = []models.Exercise{}
	}
	return result, nil
}

func (l *Local) GetTodaysSplit(_ context.Context, day time.Time) (*splits.Today, error) {
	today, err := splits.Plan(l.templates, l.training.ActiveTemplate, l.training.WeeklySchedule, day, l.cat, 10)
	if err != nil {
		return nil, err
	}
	return &today, nil
}

func (l *Local) ListSplitTemplates(context.Context) ([]models.SplitTemplate, error) {
	return l.templates, nil
}
