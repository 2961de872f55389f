package mcp

import (
	"context"
	"time"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/splits"
	"github.com/meltforce/gymbuddy/internal/storage"
	"github.com/meltforce/gymbuddy/internal/summary"
)

// DataSource abstracts the data layer for MCP tools. Both *Local (vault and
// index in process) and HTTPClient (remote via REST API) satisfy this
// interface.
type DataSource interface {
	GetWorkout(ctx context.Context, date string) (*models.Workout, error)
	GetWorkoutMarkdown(ctx context.Context, date string) (string, error)
	QueryWorkouts(ctx context.Context, start, end time.Time) ([]models.WorkoutRow, error)
	QueryWorkoutSets(ctx context.Context, start, end time.Time, exerciseFilter string) ([]models.WorkoutSetRow, error)
	QueryExerciseBests(ctx context.Context, start, end time.Time) ([]storage.ExerciseBest, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
	GetWeeklySummary(ctx context.Context, day time.Time) (*summary.Week, error)
	SearchExercises(ctx context.Context, q catalog.Query, limit int) ([]models.Exercise, error)
	GetTodaysSplit(ctx context.Context, day time.Time) (*splits.Today, error)
	ListSplitTemplates(ctx context.Context) ([]models.SplitTemplate, error)
}
