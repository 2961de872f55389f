package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gymbuddy/internal/catalog"
	"github.com/meltforce/gymbuddy/internal/models"
	"github.com/meltforce/gymbuddy/internal/summary"
)

// defaultTimeRange returns start/end defaulting to the last days days up to
// now. A date-only end includes that whole day.
func defaultTimeRange(startStr, endStr string, now time.Time, days int) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if _, dateOnly := parseDate(endStr); dateOnly {
			end = end.AddDate(0, 0, 1)
		}
	} else {
		end = now
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -days)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(models.DateLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(models.DateLayout, s)
	return t, err == nil
}

// dayParam reads a YYYY-MM-DD argument, defaulting to today.
func (h *handlers) dayParam(req mcp.CallToolRequest, name string) (time.Time, bool) {
	v := req.GetString(name, "")
	if v == "" {
		now := h.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return parseDate(v)
}

// --- Tool definitions ---

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Read the workout logged on a date: duration, muscles, split and every exercise with its sets (weight, reps, time, RPE)."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Workout date (YYYY-MM-DD)")),
	mcp.WithString("format", mcp.Description("json for structured data, markdown for the note as written. Defaults to json."), mcp.Enum("json", "markdown")),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List indexed workouts in a date range with duration, muscles, volume, split and exercise/set counts."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD), inclusive. Defaults to now.")),
)

var toolGetWorkoutSets = mcp.NewTool("get_workout_sets",
	mcp.WithDescription("Query individual sets across workouts. Returns exercise name, set number, weight, reps, time and RPE per set, newest first."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date, inclusive. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench press')")),
)

var toolGetExerciseBests = mcp.NewTool("get_exercise_bests",
	mcp.WithDescription("Heaviest set per exercise in a date range, with its reps and date."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 365 days ago.")),
	mcp.WithString("end", mcp.Description("End date, inclusive. Defaults to now.")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Weekly/monthly aggregated training: sessions, duration, sets, reps, volume, average RPE and the most trained exercises per period."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date, inclusive. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to week."), mcp.Enum("week", "month")),
)

var toolGetWeeklySummary = mcp.NewTool("get_weekly_summary",
	mcp.WithDescription("Monday-to-Sunday report read straight from the workout notes: sessions, duration, sets, reps, volume, muscles hit and per-exercise totals with best weight."),
	mcp.WithString("week", mcp.Description("Any date in the week (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("format", mcp.Description("json or markdown. Defaults to json."), mcp.Enum("json", "markdown")),
)

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the exercise catalog by name, muscles and force. Muscle names are normalized (quads, delts, abdominals)."),
	mcp.WithString("query", mcp.Description("Name contains (case-insensitive)")),
	mcp.WithString("muscles", mcp.Description("Comma-separated muscles, e.g. 'chest,triceps'")),
	mcp.WithString("match", mcp.Description("all: exercise works every muscle; any: at least one. Defaults to all."), mcp.Enum("all", "any")),
	mcp.WithString("force", mcp.Description("Movement force"), mcp.Enum("push", "pull", "static")),
	mcp.WithNumber("limit", mcp.Description("Maximum results. Defaults to 25.")),
)

var toolGetTodaysSplit = mcp.NewTool("get_todays_split",
	mcp.WithDescription("The split the weekly schedule assigns to a day in the active template, with exercise suggestions for its muscle groups."),
	mcp.WithString("date", mcp.Description("Day (YYYY-MM-DD). Defaults to today.")),
)

// --- Tool handlers ---

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	if _, ok := parseDate(date); !ok {
		return mcp.NewToolResultError("invalid date (YYYY-MM-DD): " + date), nil
	}

	if req.GetString("format", "json") == "markdown" {
		text, err := h.ds.GetWorkoutMarkdown(ctx, date)
		if err != nil {
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}

	w, err := h.ds.GetWorkout(ctx, date)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(w)
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now(), 30)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.ds.QueryWorkouts(ctx, start, end)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rows)
}

func (h *handlers) getWorkoutSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now(), 30)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.ds.QueryWorkoutSets(ctx, start, end, req.GetString("exercise", ""))
	if err != nil {
		h.log.Error("mcp get_workout_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rows)
}

func (h *handlers) getExerciseBests(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now(), 365)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	bests, err := h.ds.QueryExerciseBests(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_exercise_bests", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(bests)
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now(), 90)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	periods, err := h.ds.GetTrainingSummary(ctx, start, end, req.GetString("bucket", "week"))
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(periods)
}

func (h *handlers) getWeeklySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, ok := h.dayParam(req, "week")
	if !ok {
		return mcp.NewToolResultError("invalid week (YYYY-MM-DD)"), nil
	}

	wk, err := h.ds.GetWeeklySummary(ctx, day)
	if err != nil {
		h.log.Error("mcp get_weekly_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if req.GetString("format", "json") == "markdown" {
		return mcp.NewToolResultText(summary.RenderMarkdown(*wk)), nil
	}
	return jsonResult(wk)
}

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := catalog.Query{
		Text:      req.GetString("query", ""),
		Force:     req.GetString("force", ""),
		AnyMuscle: req.GetString("match", "all") == "any",
	}
	for _, m := range strings.Split(req.GetString("muscles", ""), ",") {
		if m = strings.TrimSpace(m); m != "" {
			q.Muscles = append(q.Muscles, m)
		}
	}

	exercises, err := h.ds.SearchExercises(ctx, q, req.GetInt("limit", 25))
	if err != nil {
		h.log.Error("mcp search_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(exercises)
}

func (h *handlers) getTodaysSplit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, ok := h.dayParam(req, "date")
	if !ok {
		return mcp.NewToolResultError("invalid date (YYYY-MM-DD)"), nil
	}

	today, err := h.ds.GetTodaysSplit(ctx, day)
	if err != nil {
		h.log.Error("mcp get_todays_split", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(today)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
