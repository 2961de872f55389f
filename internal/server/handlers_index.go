package server

import "net/http"

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	stats, err := s.Index.GetIndexStats(r.Context())
	if err != nil {
		s.internalError(w, "querying index stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleIndexRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireIndex(w) {
		return
	}
	runs, err := s.Index.QueryIndexRuns(r.Context(), parseLimit(r, 20))
	if err != nil {
		s.internalError(w, "querying index runs", err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
