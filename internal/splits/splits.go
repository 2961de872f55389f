// Package splits provides training split templates and the weekly schedule
// lookup.
package splits

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/gymbuddy/internal/models"
)

// ErrUnknownTemplate is returned when a template id matches nothing.
var ErrUnknownTemplate = errors.New("unknown split template")

var back = []string{"Lower Back", "Upper Back", "Lats", "Traps"}

func groups(parts ...any) []string {
	var out []string
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, v)
		case []string:
			out = append(out, v...)
		}
	}
	return out
}

// Builtin returns the built-in templates. Each call returns a fresh copy.
func Builtin() []models.SplitTemplate {
	return []models.SplitTemplate{
		{
			ID:   "ppl",
			Name: "Push/Pull/Legs",
			Splits: []models.TrainingSplit{
				{ID: "ppl-push", Name: "Push", MuscleGroups: groups("Chest", "Shoulders", "Triceps")},
				{ID: "ppl-pull", Name: "Pull", MuscleGroups: groups(back, "Biceps", "Rear Delts")},
				{ID: "ppl-legs", Name: "Legs", MuscleGroups: groups("Quadriceps", "Hamstrings", "Glutes", "Calves")},
			},
		},
		{
			ID:   "upper-lower",
			Name: "Upper/Lower",
			Splits: []models.TrainingSplit{
				{ID: "upper-lower-upper", Name: "Upper Body", MuscleGroups: groups("Chest", back, "Shoulders", "Biceps", "Triceps")},
				{ID: "upper-lower-lower", Name: "Lower Body", MuscleGroups: groups("Quadriceps", "Hamstrings", "Glutes", "Calves", "Abs")},
			},
		},
		{
			ID:   "bro-split",
			Name: "Bro Split (5-day)",
			Splits: []models.TrainingSplit{
				{ID: "bro-chest", Name: "Chest", MuscleGroups: groups("Chest", "Triceps")},
				{ID: "bro-back", Name: "Back", MuscleGroups: groups(back, "Biceps")},
				{ID: "bro-shoulders", Name: "Shoulders", MuscleGroups: groups("Shoulders", "Triceps")},
				{ID: "bro-arms", Name: "Arms", MuscleGroups: groups("Biceps", "Triceps", "Forearms")},
				{ID: "bro-legs", Name: "Legs", MuscleGroups: groups("Quadriceps", "Hamstrings", "Glutes", "Calves")},
			},
		},
		{
			ID:   "full-body",
			Name: "Full Body",
			Splits: []models.TrainingSplit{
				{ID: "full-body-all", Name: "Full Body", MuscleGroups: groups(
					"Chest", back, "Shoulders", "Biceps", "Triceps",
					"Quadriceps", "Hamstrings", "Glutes", "Calves", "Abs",
				)},
			},
		},
		{
			ID:   "arnold",
			Name: "Arnold Split",
			Splits: []models.TrainingSplit{
				{ID: "arnold-chest-back", Name: "Chest & Back", MuscleGroups: groups("Chest", "Back")},
				{ID: "arnold-shoulders-arms", Name: "Shoulders & Arms", MuscleGroups: groups("Shoulders", "Biceps", "Triceps")},
				{ID: "arnold-legs", Name: "Legs", MuscleGroups: groups("Quadriceps", "Hamstrings", "Glutes", "Calves")},
			},
		},
		{
			ID:   "hybrid",
			Name: "Hybrid (PPL + Upper/Lower)",
			Splits: []models.TrainingSplit{
				{ID: "hybrid-push", Name: "Push", MuscleGroups: groups("Chest", "Shoulders", "Triceps")},
				{ID: "hybrid-pull", Name: "Pull", MuscleGroups: groups("Back", "Biceps", "Traps", "Rear Delts")},
				{ID: "hybrid-legs", Name: "Legs", MuscleGroups: groups("Quadriceps", "Hamstrings", "Glutes", "Calves")},
				{ID: "hybrid-upper", Name: "Upper Body", MuscleGroups: groups("Chest", "Back", "Shoulders", "Biceps", "Triceps", "Traps")},
				{ID: "hybrid-lower", Name: "Lower Body", MuscleGroups: groups("Quadriceps", "Hamstrings", "Glutes", "Calves", "Abs")},
			},
		},
	}
}

// Find returns the template with the given id.
func Find(templates []models.SplitTemplate, id string) (models.SplitTemplate, error) {
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return models.SplitTemplate{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
}

// SplitByID returns the split with the given id within a template.
func SplitByID(t models.SplitTemplate, splitID string) (models.TrainingSplit, bool) {
	for _, s := range t.Splits {
		if s.ID == splitID {
			return s, true
		}
	}
	return models.TrainingSplit{}, false
}

// MuscleGroupsForSplit returns the muscle groups of a split, or nil when
// either id is unknown.
func MuscleGroupsForSplit(templates []models.SplitTemplate, templateID, splitID string) []string {
	t, err := Find(templates, templateID)
	if err != nil {
		return nil
	}
	s, ok := SplitByID(t, splitID)
	if !ok {
		return nil
	}
	return s.MuscleGroups
}

// Weekday returns the lowercase English day name used as the schedule key.
func Weekday(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// TodaysSplit returns the split scheduled for day. ok is false when the day
// has no entry or the entry is not in the template.
func TodaysSplit(schedule map[string]string, t models.SplitTemplate, day time.Weekday) (models.TrainingSplit, bool) {
	splitID := schedule[Weekday(day)]
	if splitID == "" {
		return models.TrainingSplit{}, false
	}
	return SplitByID(t, splitID)
}

// AvailableSplit is a split offered for building a composite template.
type AvailableSplit struct {
	Split        models.TrainingSplit `json:"split"`
	TemplateName string               `json:"template_name"`
	TemplateID   string               `json:"template_id"`
	IsCustom     bool                 `json:"is_custom"`
}

// AllAvailableSplits lists the distinct built-in splits. Two splits are the
// same when their name and sorted muscle groups match; the first one wins.
// Custom templates are composites of built-in splits and are not listed.
func AllAvailableSplits() []AvailableSplit {
	var out []AvailableSplit
	seen := make(map[string]bool)
	for _, t := range Builtin() {
		for _, s := range t.Splits {
			sorted := slices.Clone(s.MuscleGroups)
			slices.Sort(sorted)
			key := s.Name + "|" + strings.Join(sorted, ",")
			if seen[key] {
				continue
			}
			seen[key] = true
			s.SourceTemplateID = t.ID
			out = append(out, AvailableSplit{Split: s, TemplateName: t.Name, TemplateID: t.ID})
		}
	}
	return out
}

// CompositeTemplate builds a custom template from chosen splits. Split ids
// are prefixed with their source template id so they stay unique. An empty
// id is generated from now.
func CompositeTemplate(name string, picks []AvailableSplit, id string, now time.Time) models.SplitTemplate {
	if id == "" {
		id = "custom-composite-" + strconv.FormatInt(now.UnixMilli(), 10)
	}
	splits := make([]models.TrainingSplit, 0, len(picks))
	for _, p := range picks {
		s := p.Split
		s.MuscleGroups = slices.Clone(s.MuscleGroups)
		s.ID = p.TemplateID + "-" + p.Split.ID
		s.SourceTemplateID = p.TemplateID
		splits = append(splits, s)
	}
	return models.SplitTemplate{
		ID:          id,
		Name:        name,
		Splits:      splits,
		IsCustom:    true,
		IsComposite: true,
	}
}

// MuscleIndex finds exercises that work any of the given muscles.
type MuscleIndex interface {
	ByAnyMuscle(muscles []string) []models.Exercise
}

// Today is the split scheduled for a day and exercises that train it.
type Today struct {
	Date        string                `json:"date"`
	Weekday     string                `json:"weekday"`
	Template    string                `json:"template"`
	Split       *models.TrainingSplit `json:"split"`
	Suggestions []models.Exercise     `json:"suggestions"`
}

// Plan looks up the split the schedule assigns to day in the active
// template and suggests up to limit exercises for its muscle groups. A day
// without a scheduled split has a nil Split and no suggestions.
func Plan(templates []models.SplitTemplate, activeID string, schedule map[string]string, day time.Time, exercises MuscleIndex, limit int) (Today, error) {
	t, err := Find(templates, activeID)
	if err != nil {
		return Today{}, err
	}
	today := Today{
		Date:        day.Format(models.DateLayout),
		Weekday:     Weekday(day.Weekday()),
		Template:    t.ID,
		Suggestions: []models.Exercise{},
	}
	split, ok := TodaysSplit(schedule, t, day.Weekday())
	if !ok {
		return today, nil
	}
	today.Split = &split
	if exercises != nil {
		suggestions := exercises.ByAnyMuscle(split.MuscleGroups)
		if limit > 0 && len(suggestions) > limit {
			suggestions = suggestions[:limit]
		}
		today.Suggestions = append(today.Suggestions, suggestions...)
	}
	return today, nil
}
