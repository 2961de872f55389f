// Package ingest holds what the import providers share: the result they
// report and the state of files already imported.
package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SetsReceived     int `json:"sets_received"`
	WarmupsDropped   int `json:"warmups_dropped"`

	WorkoutsCreated   int `json:"workouts_created"`
	WorkoutsMerged    int `json:"workouts_merged"`
	WorkoutsUnchanged int `json:"workouts_unchanged"`
	ExercisesAdded    int `json:"exercises_added"`

	SetsIndexed int64    `json:"sets_indexed,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Skipped     []string `json:"skipped,omitempty"` // existing notes that could not be merged

	Message string `json:"message,omitempty"`
}
