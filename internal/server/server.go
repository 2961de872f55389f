package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/config"
	"github.com/meltforce/gymbuddy/internal/dailynote"
	"github.com/meltforce/gymbuddy/internal/indexer"
	"github.com/meltforce/gymbuddy/internal/ingest/alpha"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/storage"
	"github.com/meltforce/gymbuddy/internal/vault"
)

// Index is the read side of the history index.
type Index interface {
	QueryWorkouts(ctx context.Context, start, end time.Time) ([]models.WorkoutRow, error)
	QueryWorkoutSets(ctx context.Context, start, end time.Time, exercise string) ([]models.WorkoutSetRow, error)
	QueryExerciseBests(ctx context.Context, start, end time.Time) ([]storage.ExerciseBest, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
	GetIndexStats(ctx context.Context) (*storage.IndexStats, error)
	QueryIndexRuns(ctx context.Context, limit int) ([]storage.IndexRun, error)
}

// Reindexer keeps the index in step with the vault.
type Reindexer interface {
	RunWithProgress(ctx context.Context, source string, progress func(indexer.Progress)) (*indexer.Stats, error)
	IndexWorkout(ctx context.Context, w models.Workout, path string) (int64, error)
}

// Deps are the components behind the HTTP API. Index, Indexer, DailyNote
// and Alpha may be nil; their endpoints then answer 503 or 404.
type Deps struct {
	Store     *vault.Store
	Catalog   *catalog.Catalog
	Templates []models.SplitTemplate
	Training  config.TrainingConfig
	Index     Index
	Indexer   Reindexer
	DailyNote *dailynote.Integrator
	Alpha     *alpha.Provider
	APIKey    string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	Deps
	log    *slog.Logger
	router chi.Router
	now    func() time.Time

	reindexMu     sync.Mutex
	activeReindex *reindexState
}

// New creates a new Server with all routes configured.
func New(deps Deps, log *slog.Logger) *Server {
	s := &Server{
		Deps:   deps,
		log:    log,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches another handler, such as the MCP endpoint, under pattern.
// Mounted handlers sit behind the API key.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.With(APIKeyAuth(s.APIKey)).Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)

	// Read endpoints (no auth; tsnet handles access)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/{date}", s.handleGetWorkout)
	s.router.Get("/api/v1/workouts/{date}/markdown", s.handleGetWorkoutMarkdown)
	s.router.Get("/api/v1/workouts/{date}/html", s.handleGetWorkoutHTML)
	s.router.Get("/api/v1/sets", s.handleQuerySets)
	s.router.Get("/api/v1/exercises", s.handleExercises)
	s.router.Get("/api/v1/exercises/bests", s.handleExerciseBests)
	s.router.Get("/api/v1/training-summary", s.handleTrainingSummary)
	s.router.Get("/api/v1/summary/weekly", s.handleWeeklySummary)
	s.router.Get("/api/v1/splits", s.handleSplits)
	s.router.Get("/api/v1/splits/available", s.handleAvailableSplits)
	s.router.Get("/api/v1/splits/today", s.handleTodaysSplit)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/index-runs", s.handleIndexRuns)
	s.router.Get("/api/v1/reindex/status", s.handleReindexStatus)
	s.router.Get("/api/v1/reindex/events", s.handleReindexEvents)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.APIKey))
		r.Post("/api/v1/workouts/finish", s.handleFinishWorkout)
		r.Put("/api/v1/workouts/{date}", s.handlePutWorkout)
		r.Post("/api/v1/workouts/{date}/daily-note", s.handleDailyNote)
		r.Post("/api/v1/ingest/alpha", s.handleAlphaIngest)
		r.Post("/api/v1/reindex", s.handleStartReindex)
		r.Post("/api/v1/reindex/cancel", s.handleCancelReindex)
	})
}
