package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/render"
	"github.com/meltforce/gymbuddy/internal/session"
	"github.com/meltforce/gymbuddy/internal/vault"
	"github.com/meltforce/gymbuddy/internal/workoutmd"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"index":  s.Index != nil,
	})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	start, end, err := parseDateRange(r, s.now(), 30)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.Index.QueryWorkouts(r.Context(), start, end)
	if err != nil {
		s.internalError(w, "querying workouts", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// dateParam returns the {date} URL parameter, answering 400 when it is not
// a YYYY-MM-DD date.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date (YYYY-MM-DD): "+date)
		return "", false
	}
	return date, true
}

// loadNote reads the note for date, answering 404 when it does not exist.
func (s *Server) loadNote(w http.ResponseWriter, r *http.Request, date string) (string, bool) {
	text, err := s.Store.LoadText(r.Context(), date)
	if errors.Is(err, vault.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no workout on "+date)
		return "", false
	}
	if err != nil {
		s.internalError(w, "reading workout note", err)
		return "", false
	}
	return text, true
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	text, ok := s.loadNote(w, r, date)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, workoutmd.Decode(text, date))
}

func (s *Server) handleGetWorkoutMarkdown(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	text, ok := s.loadNote(w, r, date)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (s *Server) handleGetWorkoutHTML(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	text, ok := s.loadNote(w, r, date)
	if !ok {
		return
	}
	out, err := render.Note(text)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// putWorkoutResponse reports where a saved workout went.
type putWorkoutResponse struct {
	Path        string `json:"path"`
	SetsIndexed int64  `json:"sets_indexed"`
	Indexed     bool   `json:"indexed"`
	DailyNote   string `json:"daily_note,omitempty"`
}

func (s *Server) handlePutWorkout(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if workout.Date == "" {
		workout.Date = date
	}
	if workout.Date != date {
		writeError(w, http.StatusBadRequest, "body date "+workout.Date+" does not match path date "+date)
		return
	}
	if err := workout.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.saveWorkout(r, workout)
	if err != nil {
		s.internalError(w, "saving workout", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// saveWorkout writes the note and, when an indexer is wired, indexes what
// was written. Indexing failures are logged and leave Indexed false.
func (s *Server) saveWorkout(r *http.Request, workout models.Workout) (putWorkoutResponse, error) {
	path, err := s.Store.Save(r.Context(), workout)
	if err != nil {
		return putWorkoutResponse{}, err
	}
	resp := putWorkoutResponse{Path: path}

	if s.Indexer != nil {
		// Re-read so the index holds exactly what the note says.
		saved, err := s.Store.Load(r.Context(), workout.Date)
		if err == nil {
			resp.SetsIndexed, err = s.Indexer.IndexWorkout(r.Context(), saved, path)
		}
		if err != nil {
			s.log.Warn("indexing saved workout failed", "path", path, "error", err)
		} else {
			resp.Indexed = true
		}
	}
	return resp, nil
}

// handleFinishWorkout turns an active session into today's note. The
// duration, muscles and volume are derived from the session.
func (s *Server) handleFinishWorkout(w http.ResponseWriter, r *http.Request) {
	var active models.ActiveWorkout
	if err := json.NewDecoder(r.Body).Decode(&active); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(active.Exercises) == 0 {
		writeError(w, http.StatusBadRequest, "workout has no exercises")
		return
	}
	if active.StartTime.IsZero() {
		writeError(w, http.StatusBadRequest, "start_time is required")
		return
	}

	var lookup session.MuscleLookup
	if s.Catalog != nil {
		lookup = s.Catalog
	}
	workout := session.Finish(active, lookup, s.now())
	if err := workout.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := s.saveWorkout(r, workout)
	if err != nil {
		s.internalError(w, "saving workout", err)
		return
	}

	if s.DailyNote != nil {
		res, err := s.DailyNote.Append(r.Context(), workout)
		if err != nil {
			s.log.Warn("appending to daily note failed", "date", workout.Date, "error", err)
		} else {
			resp.DailyNote = res.Path
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDailyNote(w http.ResponseWriter, r *http.Request) {
	if s.DailyNote == nil {
		writeError(w, http.StatusNotFound, "daily notes are disabled")
		return
	}
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	text, ok := s.loadNote(w, r, date)
	if !ok {
		return
	}
	res, err := s.DailyNote.Append(r.Context(), workoutmd.Decode(text, date))
	if errors.Is(err, vault.ErrNotFound) {
		writeError(w, http.StatusNotFound, "daily note does not exist")
		return
	}
	if err != nil {
		s.internalError(w, "appending to daily note", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAlphaIngest(w http.ResponseWriter, r *http.Request) {
	if s.Alpha == nil {
		writeError(w, http.StatusServiceUnavailable, "alpha import is not configured")
		return
	}
	result, err := s.Alpha.Ingest(r.Context(), r.Body)
	if err != nil {
		s.log.Error("alpha ingest error", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) requireIndex(w http.ResponseWriter) bool {
	if s.Index == nil {
		writeError(w, http.StatusServiceUnavailable, "history index is not configured")
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, doing string, err error) {
	s.log.Error(doing, "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
