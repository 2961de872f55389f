package splits

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meltforce/gymbuddy/internal/models"
)

type customFile struct {
	Templates []models.SplitTemplate `yaml:"templates"`
}

// LoadCustomFile reads custom templates from YAML. A missing file is an empty
// list. Loaded templates are marked custom.
func LoadCustomFile(path string) ([]models.SplitTemplate, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading custom templates: %w", err)
	}
	var f customFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing custom templates: %w", err)
	}
	for i := range f.Templates {
		t := &f.Templates[i]
		if t.ID == "" {
			return nil, fmt.Errorf("custom template %d (%q): missing id", i, t.Name)
		}
		t.IsCustom = true
	}
	return f.Templates, nil
}

// SaveCustomFile writes custom templates as YAML.
func SaveCustomFile(path string, templates []models.SplitTemplate) error {
	data, err := yaml.Marshal(&customFile{Templates: templates})
	if err != nil {
		return fmt.Errorf("encoding custom templates: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing custom templates: %w", err)
	}
	return nil
}

// All returns the built-in templates followed by the custom ones from path.
// A custom template with a built-in id shadows the built-in.
func All(customPath string) ([]models.SplitTemplate, error) {
	builtin := Builtin()
	if customPath == "" {
		return builtin, nil
	}
	custom, err := LoadCustomFile(customPath)
	if err != nil {
		return nil, err
	}
	shadowed := make(map[string]bool, len(custom))
	for _, t := range custom {
		shadowed[t.ID] = true
	}
	out := make([]models.SplitTemplate, 0, len(builtin)+len(custom))
	for _, t := range builtin {
		if !shadowed[t.ID] {
			out = append(out, t)
		}
	}
	return append(out, custom...), nil
}
