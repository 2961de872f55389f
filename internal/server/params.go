package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
)

// parseDateRange reads start and end query parameters as dates or RFC 3339
// times. The returned end is exclusive: a date-only end covers that whole
// day. Without start the range is the defaultDays days up to and including
// today.
func parseDateRange(r *http.Request, now time.Time, defaultDays int) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if endStr == "" {
		end = today.AddDate(0, 0, 1)
	} else if end, err = parseBound(endStr, true); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}

	if startStr == "" {
		start = end.AddDate(0, 0, -defaultDays)
	} else if start, err = parseBound(startStr, false); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is not before end %s",
			start.Format(models.DateLayout), end.Format(models.DateLayout))
	}
	return start, end, nil
}

func parseBound(s string, isEnd bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if isEnd {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

// parseDay reads a single date parameter, defaulting to today.
func parseDay(r *http.Request, name string, now time.Time) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s (YYYY-MM-DD): %s", name, v)
	}
	return t, nil
}

// parseList splits a comma-separated parameter, dropping empty items.
func parseList(r *http.Request, name string) []string {
	var out []string
	for _, part := range strings.Split(r.URL.Query().Get(name), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseLimit reads a positive limit parameter.
func parseLimit(r *http.Request, def int) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			return n
		}
	}
	return def
}
