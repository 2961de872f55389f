package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("gymbuddy", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("gymbuddy workout log server. Workouts are markdown notes, one per day, with a set table per exercise. Read workouts, set history, personal bests, weekly and periodic training summaries, search the exercise catalog and look up today's scheduled split. Weights are in the unit the user logs in."),
	)

	h := &handlers{ds: ds, log: log, now: time.Now}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkoutSets, Handler: h.getWorkoutSets},
		server.ServerTool{Tool: toolGetExerciseBests, Handler: h.getExerciseBests},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
		server.ServerTool{Tool: toolGetWeeklySummary, Handler: h.getWeeklySummary},
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
		server.ServerTool{Tool: toolGetTodaysSplit, Handler: h.getTodaysSplit},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resSplitTemplates, Handler: h.splitTemplates},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
	now func() time.Time
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"gymbuddy://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Indexed workouts from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resSplitTemplates = mcp.NewResource(
	"gymbuddy://split_templates",
	"Split Templates",
	mcp.WithResourceDescription("Built-in and custom training split templates with their muscle groups"),
	mcp.WithMIMEType("application/json"),
)
