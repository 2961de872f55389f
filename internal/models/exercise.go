package models

// ExerciseType decides which fields a set of the exercise tracks.
type ExerciseType string

const (
	ExerciseWeight     ExerciseType = "weight"
	ExerciseBodyweight ExerciseType = "bodyweight"
	ExerciseTimed      ExerciseType = "timed"
	ExerciseCardio     ExerciseType = "cardio"
)

// WeightUnit is the unit weights are logged in.
type WeightUnit string

const (
	UnitLbs WeightUnit = "lbs"
	UnitKg  WeightUnit = "kg"
)

// Exercise is a catalog entry.
type Exercise struct {
	ID               string       `json:"id" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Muscles          []string     `json:"muscles" yaml:"muscles"`
	Type             ExerciseType `json:"type" yaml:"type"`
	TrackWeight      bool         `json:"track_weight" yaml:"track_weight"`
	TrackReps        bool         `json:"track_reps" yaml:"track_reps"`
	TrackTime        bool         `json:"track_time" yaml:"track_time"`
	TrackDistance    bool         `json:"track_distance" yaml:"track_distance"`
	Unit             WeightUnit   `json:"unit" yaml:"unit"`
	SecondaryMuscles []string     `json:"secondary_muscles,omitempty" yaml:"secondary_muscles,omitempty"`
	Force            string       `json:"force,omitempty" yaml:"force,omitempty"` // push, pull, static
	Equipment        string       `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Instructions     []string     `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Source           string       `json:"source,omitempty" yaml:"source,omitempty"` // database, custom
}

// TrainingSplit is one day type within a split template.
type TrainingSplit struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	MuscleGroups     []string `json:"muscle_groups" yaml:"muscle_groups"`
	SourceTemplateID string   `json:"source_template_id,omitempty" yaml:"source_template_id,omitempty"`
}

// SplitTemplate groups the splits of a training program.
type SplitTemplate struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Splits      []TrainingSplit `json:"splits" yaml:"splits"`
	IsCustom    bool            `json:"is_custom,omitempty" yaml:"is_custom,omitempty"`
	IsComposite bool            `json:"is_composite,omitempty" yaml:"is_composite,omitempty"`
}
