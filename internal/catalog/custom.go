package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/meltforce/gymbuddy/internal/models"
)

// customFile is the on-disk shape of the custom exercise list.
type customFile struct {
	Exercises []models.Exercise `yaml:"exercises"`
}

// NewCustomExercise creates a user-defined exercise with a fresh id. The
// tracked fields follow from the type.
func NewCustomExercise(name string, typ models.ExerciseType, muscles []string, unit models.WeightUnit) models.Exercise {
	if unit == "" {
		unit = models.UnitLbs
	}
	return models.Exercise{
		ID:            "custom-" + uuid.NewString(),
		Name:          strings.TrimSpace(name),
		Muscles:       normalizeAll(muscles),
		Type:          typ,
		TrackWeight:   typ == models.ExerciseWeight,
		TrackReps:     typ == models.ExerciseWeight || typ == models.ExerciseBodyweight,
		TrackTime:     typ == models.ExerciseTimed || typ == models.ExerciseCardio,
		TrackDistance: typ == models.ExerciseCardio,
		Unit:          unit,
		Source:        "custom",
	}
}

// LoadCustomFile reads custom exercises from a YAML file. A missing file is
// an empty list.
func LoadCustomFile(path string) ([]models.Exercise, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading custom exercises: %w", err)
	}
	var f customFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing custom exercises: %w", err)
	}
	for i := range f.Exercises {
		ex := &f.Exercises[i]
		if ex.ID == "" {
			return nil, fmt.Errorf("custom exercise %d (%q): missing id", i, ex.Name)
		}
		if ex.Source == "" {
			ex.Source = "custom"
		}
	}
	return f.Exercises, nil
}

// SaveCustomFile writes the custom exercises of c to path.
func SaveCustomFile(path string, c *Catalog) error {
	var f customFile
	for _, ex := range c.All() {
		if ex.Source == "custom" {
			f.Exercises = append(f.Exercises, ex)
		}
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encoding custom exercises: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating custom exercise dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing custom exercises: %w", err)
	}
	return nil
}

// Load builds the catalog used by the commands: the built-in database plus
// the custom file when one is configured.
func Load(unit models.WeightUnit, customPath string) (*Catalog, error) {
	c, err := LoadBuiltin(unit)
	if err != nil {
		return nil, err
	}
	if customPath == "" {
		return c, nil
	}
	custom, err := LoadCustomFile(customPath)
	if err != nil {
		return nil, err
	}
	for _, ex := range custom {
		if err := c.Add(ex); err != nil {
			return nil, err
		}
	}
	return c, nil
}
