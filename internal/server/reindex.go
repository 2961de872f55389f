package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/meltforce/gymbuddy/internal/indexer"
)

// reindexState tracks a background reindex started over the API.
type reindexState struct {
	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	doneCh    chan struct{} // closed when the goroutine exits
	step      int
	total     int
	path      string
	done      bool
	err       error
	stats     *indexer.Stats
	startedAt time.Time

	subs   map[chan sseEvent]struct{}
	subsMu sync.Mutex
}

// sseEvent is an SSE message to send to subscribers.
type sseEvent struct {
	Event string
	Data  string
}

func (st *reindexState) broadcast(event sseEvent) {
	st.subsMu.Lock()
	defer st.subsMu.Unlock()
	for ch := range st.subs {
		select {
		case ch <- event:
		default:
			// slow subscriber, skip
		}
	}
}

func (st *reindexState) subscribe() chan sseEvent {
	ch := make(chan sseEvent, 32)
	st.subsMu.Lock()
	st.subs[ch] = struct{}{}
	st.subsMu.Unlock()
	return ch
}

func (st *reindexState) unsubscribe(ch chan sseEvent) {
	st.subsMu.Lock()
	delete(st.subs, ch)
	st.subsMu.Unlock()
}

func (s *Server) handleStartReindex(w http.ResponseWriter, r *http.Request) {
	if s.Indexer == nil {
		writeError(w, http.StatusServiceUnavailable, "history index is not configured")
		return
	}

	s.reindexMu.Lock()
	if s.activeReindex != nil {
		s.activeReindex.mu.Lock()
		running := s.activeReindex.running
		s.activeReindex.mu.Unlock()
		if running {
			s.reindexMu.Unlock()
			writeError(w, http.StatusConflict, "a reindex is already running")
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	state := &reindexState{
		running:   true,
		cancel:    cancel,
		doneCh:    make(chan struct{}),
		startedAt: s.now(),
		subs:      make(map[chan sseEvent]struct{}),
	}
	s.activeReindex = state
	s.reindexMu.Unlock()

	go s.runReindex(ctx, state)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) runReindex(ctx context.Context, state *reindexState) {
	defer close(state.doneCh)

	stats, err := s.Indexer.RunWithProgress(ctx, "api", func(p indexer.Progress) {
		state.mu.Lock()
		state.step, state.total, state.path = p.Step, p.Total, p.Path
		state.mu.Unlock()
		state.broadcast(sseEvent{Event: "progress", Data: mustJSON(p)})
	})

	state.mu.Lock()
	state.running = false
	state.done = true
	state.stats = stats
	state.err = err
	state.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.log.Info("reindex cancelled")
		} else {
			s.log.Error("reindex failed", "error", err)
		}
		state.broadcast(sseEvent{Event: "error", Data: mustJSON(map[string]string{"error": err.Error()})})
		return
	}
	state.broadcast(sseEvent{Event: "complete", Data: mustJSON(stats)})
}

func (s *Server) handleCancelReindex(w http.ResponseWriter, r *http.Request) {
	s.reindexMu.Lock()
	state := s.activeReindex
	s.reindexMu.Unlock()

	if state == nil {
		writeError(w, http.StatusNotFound, "no reindex running")
		return
	}
	state.mu.Lock()
	running := state.running
	state.mu.Unlock()
	if !running {
		writeError(w, http.StatusNotFound, "no reindex running")
		return
	}

	state.cancel()
	select {
	case <-state.doneCh:
	case <-time.After(3 * time.Second):
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (s *Server) handleReindexStatus(w http.ResponseWriter, r *http.Request) {
	s.reindexMu.Lock()
	state := s.activeReindex
	s.reindexMu.Unlock()

	if state == nil {
		writeJSON(w, http.StatusOK, map[string]any{"running": false})
		return
	}

	state.mu.Lock()
	resp := map[string]any{
		"running":    state.running,
		"done":       state.done,
		"step":       state.step,
		"total":      state.total,
		"path":       state.path,
		"started_at": state.startedAt,
	}
	if state.stats != nil {
		resp["stats"] = state.stats
	}
	if state.err != nil {
		resp["error"] = state.err.Error()
	}
	state.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReindexEvents(w http.ResponseWriter, r *http.Request) {
	s.reindexMu.Lock()
	state := s.activeReindex
	s.reindexMu.Unlock()

	if state == nil {
		writeError(w, http.StatusNotFound, "no reindex running")
		return
	}
	state.mu.Lock()
	running := state.running
	state.mu.Unlock()
	if !running {
		writeError(w, http.StatusNotFound, "no reindex running")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := state.subscribe()
	defer state.unsubscribe(ch)

	state.mu.Lock()
	fmt.Fprintf(w, "event: status\ndata: %s\n\n", mustJSON(indexer.Progress{
		Step:  state.step,
		Total: state.total,
		Path:  state.path,
	}))
	state.mu.Unlock()
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-state.doneCh:
			// Drain whatever the job sent before it exited.
			for {
				select {
				case evt := <-ch:
					fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Event, evt.Data)
				default:
					flusher.Flush()
					return
				}
			}
		case evt := <-ch:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Event, evt.Data)
			flusher.Flush()
			if evt.Event == "complete" || evt.Event == "error" {
				return
			}
		}
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{}`
	}
	return string(b)
}
