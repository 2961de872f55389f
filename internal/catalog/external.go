package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/meltforce/gymbuddy/internal/models"
)

//go:embed exercises.json
var builtinJSON []byte

// ExternalExercise is the free-exercise-db record shape.
type ExternalExercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Force            *string  `json:"force"`
	Level            string   `json:"level"`
	Equipment        *string  `json:"equipment"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Category         string   `json:"category"`
}

var muscleNames = map[string]string{
	"abdominals":     "Abs",
	"abs":            "Abs",
	"lats":           "Lats",
	"middle back":    "Middle Back",
	"lower back":     "Lower Back",
	"upper back":     "Upper Back",
	"back":           "Back",
	"traps":          "Traps",
	"chest":          "Chest",
	"pectorals":      "Chest",
	"shoulders":      "Shoulders",
	"delts":          "Shoulders",
	"rear delts":     "Rear Delts",
	"biceps":         "Biceps",
	"triceps":        "Triceps",
	"forearms":       "Forearms",
	"quadriceps":     "Quadriceps",
	"quads":          "Quadriceps",
	"hamstrings":     "Hamstrings",
	"glutes":         "Glutes",
	"calves":         "Calves",
	"adductors":      "Adductors",
	"abductors":      "Abductors",
	"cardiovascular": "Cardio",
	"cardio":         "Cardio",
	"neck":           "Neck",
}

var categoryTypes = map[string]models.ExerciseType{
	"strength":              models.ExerciseWeight,
	"powerlifting":          models.ExerciseWeight,
	"strongman":             models.ExerciseWeight,
	"olympic weightlifting": models.ExerciseWeight,
	"cardio":                models.ExerciseCardio,
	"stretching":            models.ExerciseTimed,
	"plyometrics":           models.ExerciseBodyweight,
}

// NormalizeMuscle maps a muscle name to its display form. Names outside the
// table are capitalized: "obliques" becomes "Obliques".
func NormalizeMuscle(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if n, ok := muscleNames[key]; ok {
		return n
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// FromExternal converts a free-exercise-db record. The category decides the
// exercise type and tracked fields; unknown categories are weight exercises.
func FromExternal(ext ExternalExercise) models.Exercise {
	primary := normalizeAll(ext.PrimaryMuscles)
	secondary := normalizeAll(ext.SecondaryMuscles)

	typ, ok := categoryTypes[strings.ToLower(ext.Category)]
	if !ok {
		typ = models.ExerciseWeight
	}
	if typ == models.ExerciseCardio && !slices.Contains(primary, "Cardio") {
		primary = append([]string{"Cardio"}, primary...)
	}

	// Rucking logs pack weight next to distance and time.
	rucking := ext.ID == "Rucking"

	ex := models.Exercise{
		ID:            ext.ID,
		Name:          ext.Name,
		Muscles:       primary,
		Type:          typ,
		TrackWeight:   typ == models.ExerciseWeight || rucking,
		TrackReps:     typ == models.ExerciseWeight || typ == models.ExerciseBodyweight,
		TrackTime:     typ == models.ExerciseCardio || typ == models.ExerciseTimed,
		TrackDistance: typ == models.ExerciseCardio,
		Unit:          models.UnitLbs,
		Instructions:  ext.Instructions,
		Source:        "database",
	}
	if len(secondary) > 0 {
		ex.SecondaryMuscles = secondary
	}
	if ext.Force != nil {
		ex.Force = *ext.Force
	}
	if ext.Equipment != nil {
		ex.Equipment = *ext.Equipment
	}
	return ex
}

func normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, NormalizeMuscle(n))
	}
	return out
}

// LoadBuiltin builds a catalog from the embedded exercise database. unit
// overrides the default lbs unit of every entry when non-empty.
func LoadBuiltin(unit models.WeightUnit) (*Catalog, error) {
	var raw []ExternalExercise
	if err := json.Unmarshal(builtinJSON, &raw); err != nil {
		return nil, fmt.Errorf("parsing builtin exercises: %w", err)
	}
	exercises := make([]models.Exercise, 0, len(raw))
	for _, ext := range raw {
		ex := FromExternal(ext)
		if unit != "" {
			ex.Unit = unit
		}
		exercises = append(exercises, ex)
	}
	return New(exercises), nil
}
