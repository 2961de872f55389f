package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/splits"
	"github.com/meltforce/gymbuddy/internal/storage"
	"github.com/meltforce/gymbuddy/internal/summary"
)

// HTTPClient implements DataSource by calling the gymbuddy REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the vault and index live on the server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// getJSON fetches path and decodes the JSON response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func workoutPath(date string) string {
	return "/api/v1/workouts/" + url.PathEscape(date)
}

func (c *HTTPClient) GetWorkout(ctx context.Context, date string) (*models.Workout, error) {
	var w models.Workout
	if err := c.getJSON(ctx, workoutPath(date), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) GetWorkoutMarkdown(ctx context.Context, date string) (string, error) {
	body, err := c.get(ctx, workoutPath(date)+"/markdown", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, start, end time.Time) ([]models.WorkoutRow, error) {
	var rows []models.WorkoutRow
	if err := c.getJSON(ctx, "/api/v1/workouts", timeParams(start, end), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) QueryWorkoutSets(ctx context.Context, start, end time.Time, exerciseFilter string) ([]models.WorkoutSetRow, error) {
	params := timeParams(start, end)
	if exerciseFilter != "" {
		params.Set("exercise", exerciseFilter)
	}
	var rows []models.WorkoutSetRow
	if err := c.getJSON(ctx, "/api/v1/sets", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *HTTPClient) QueryExerciseBests(ctx context.Context, start, end time.Time) ([]storage.ExerciseBest, error) {
	var bests []storage.ExerciseBest
	if err := c.getJSON(ctx, "/api/v1/exercises/bests", timeParams(start, end), &bests); err != nil {
		return nil, err
	}
	return bests, nil
}

func (c *HTTPClient) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error) {
	params := timeParams(start, end)
	params.Set("bucket", bucket)
	var periods []storage.TrainingSummaryPeriod
	if err := c.getJSON(ctx, "/api/v1/training-summary", params, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

func (c *HTTPClient) GetWeeklySummary(ctx context.Context, day time.Time) (*summary.Week, error) {
	params := url.Values{}
	params.Set("week", day.Format(models.DateLayout))
	var wk summary.Week
	if err := c.getJSON(ctx, "/api/v1/summary/weekly", params, &wk); err != nil {
		return nil, err
	}
	return &wk, nil
}

func (c *HTTPClient) SearchExercises(ctx context.Context, q catalog.Query, limit int) ([]models.Exercise, error) {
	params := url.Values{}
	if q.Text != "" {
		params.Set("q", q.Text)
	}
	if q.Force != "" {
		params.Set("force", q.Force)
	}
	if len(q.Muscles) > 0 {
		key := "muscles"
		if q.AnyMuscle {
			key = "any"
		}
		params.Set(key, strings.Join(q.Muscles, ","))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Exercises []models.Exercise `json:"exercises"`
	}
	if err := c.getJSON(ctx, "/api/v1/exercises", params, &resp); err != nil {
		return nil, err
	}
	return resp.Exercises, nil
}

func (c *HTTPClient) GetTodaysSplit(ctx context.Context, day time.Time) (*splits.Today, error) {
	params := url.Values{}
	params.Set("date", day.Format(models.DateLayout))
	var today splits.Today
	if err := c.getJSON(ctx, "/api/v1/splits/today", params, &today); err != nil {
		return nil, err
	}
	return &today, nil
}

func (c *HTTPClient) ListSplitTemplates(ctx context.Context) ([]models.SplitTemplate, error) {
	var resp struct {
		Templates []models.SplitTemplate `json:"templates"`
	}
	if err := c.getJSON(ctx, "/api/v1/splits", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}
