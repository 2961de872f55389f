package server

import (
	"net/http"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/splits"
	"github.com/meltforce/gymbuddy/internal/summary"
)

func (s *Server) handleQuerySets(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	start, end, err := parseDateRange(r, s.now(), 30)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.Index.QueryWorkoutSets(r.Context(), start, end, r.URL.Query().Get("exercise"))
	if err != nil {
		s.internalError(w, "querying workout sets", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleExerciseBests(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	start, end, err := parseDateRange(r, s.now(), 365)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bests, err := s.Index.QueryExerciseBests(r.Context(), start, end)
	if err != nil {
		s.internalError(w, "querying exercise bests", err)
		return
	}
	writeJSON(w, http.StatusOK, bests)
}

func (s *Server) handleTrainingSummary(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	start, end, err := parseDateRange(r, s.now(), 90)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bucket := r.URL.Query().Get("bucket")
	switch bucket {
	case "":
		bucket = "week"
	case "week", "month":
	default:
		writeError(w, http.StatusBadRequest, "bucket must be week or month")
		return
	}
	periods, err := s.Index.GetTrainingSummary(r.Context(), start, end, bucket)
	if err != nil {
		s.internalError(w, "querying training summary", err)
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

// handleWeeklySummary aggregates the Monday-to-Sunday week containing the
// week parameter straight from the vault, so it works without an index.
func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r, "week", s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	wk, err := summary.Load(r.Context(), s.Store, day)
	if err != nil {
		s.internalError(w, "loading week", err)
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(summary.RenderMarkdown(wk)))
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

// exerciseQuery reads catalog filters: q matches names, muscle or muscles
// must all be worked, any needs one of them, force matches exactly.
func exerciseQuery(r *http.Request) catalog.Query {
	q := catalog.Query{
		Text:  r.URL.Query().Get("q"),
		Force: r.URL.Query().Get("force"),
	}
	switch {
	case r.URL.Query().Get("muscle") != "":
		q.Muscles = []string{r.URL.Query().Get("muscle")}
	case r.URL.Query().Get("muscles") != "":
		q.Muscles = parseList(r, "muscles")
	case r.URL.Query().Get("any") != "":
		q.Muscles = parseList(r, "any")
		q.AnyMuscle = true
	}
	return q
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	result := s.Catalog.Filter(exerciseQuery(r))
	total := len(result)
	if limit := parseLimit(r, 50); len(result) > limit {
		result = result[:limit]
	}
	if result == nil {
		result = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":     total,
		"exercises": result,
	})
}

func (s *Server) handleSplits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"active_template": s.Training.ActiveTemplate,
		"weekly_schedule": s.Training.WeeklySchedule,
		"templates":       s.Templates,
	})
}

func (s *Server) handleAvailableSplits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, splits.AllAvailableSplits())
}

func (s *Server) handleTodaysSplit(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r, "date", s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	today, err := splits.Plan(s.Templates, s.Training.ActiveTemplate, s.Training.WeeklySchedule,
		day, s.Catalog, parseLimit(r, 10))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, today)
}
