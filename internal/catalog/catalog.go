// Package catalog holds the exercise database: the built-in exercises plus
// any custom ones, indexed by muscle and force.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/meltforce/gymbuddy/internal/models"
)

// ErrUnknownExercise is returned by Lookup for an id not in the catalog.
var ErrUnknownExercise = errors.New("unknown exercise")

// Catalog is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	exercises []models.Exercise
	byID      map[string]int
	byMuscle  map[string][]int
	byForce   map[string][]int
}

// New builds a catalog and its indexes. Later entries with a duplicate id
// replace earlier ones.
func New(exercises []models.Exercise) *Catalog {
	c := &Catalog{}
	for _, ex := range exercises {
		c.put(ex)
	}
	c.reindex()
	return c
}

func (c *Catalog) put(ex models.Exercise) {
	if c.byID == nil {
		c.byID = make(map[string]int)
	}
	if i, ok := c.byID[ex.ID]; ok {
		c.exercises[i] = ex
		return
	}
	c.byID[ex.ID] = len(c.exercises)
	c.exercises = append(c.exercises, ex)
}

// reindex rebuilds the muscle and force indexes. Secondary muscles are
// indexed alongside primary ones.
func (c *Catalog) reindex() {
	c.byMuscle = make(map[string][]int)
	c.byForce = make(map[string][]int)
	for i, ex := range c.exercises {
		seen := make(map[string]bool)
		for _, m := range append(append([]string{}, ex.Muscles...), ex.SecondaryMuscles...) {
			if seen[m] {
				continue
			}
			seen[m] = true
			c.byMuscle[m] = append(c.byMuscle[m], i)
		}
		if ex.Force != "" {
			c.byForce[ex.Force] = append(c.byForce[ex.Force], i)
		}
	}
}

// Add inserts or replaces a custom exercise.
func (c *Catalog) Add(ex models.Exercise) error {
	if strings.TrimSpace(ex.ID) == "" {
		return fmt.Errorf("adding exercise %q: empty id", ex.Name)
	}
	if strings.TrimSpace(ex.Name) == "" {
		return fmt.Errorf("adding exercise %q: empty name", ex.ID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(ex)
	c.reindex()
	return nil
}

// Len returns the number of exercises.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.exercises)
}

// All returns every exercise in catalog order.
func (c *Catalog) All() []models.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Exercise{}, c.exercises...)
}

// Lookup returns the exercise with the given id.
func (c *Catalog) Lookup(id string) (models.Exercise, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return models.Exercise{}, fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	return c.exercises[i], nil
}

// Muscles returns the primary muscles of an exercise, or nil when the id
// is unknown. It satisfies session.MuscleLookup.
func (c *Catalog) Muscles(id string) []string {
	ex, err := c.Lookup(id)
	if err != nil {
		return nil
	}
	return ex.Muscles
}

// ByMuscle returns exercises that work the muscle as primary or secondary.
// The name is normalized first, so "quads" finds Quadriceps.
func (c *Catalog) ByMuscle(muscle string) []models.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pick(c.byMuscle[NormalizeMuscle(muscle)])
}

// ByForce returns exercises with the given force: push, pull or static.
func (c *Catalog) ByForce(force string) []models.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pick(c.byForce[strings.ToLower(force)])
}

// Search returns exercises whose name contains query, case-insensitively.
func (c *Catalog) Search(query string) []models.Exercise {
	q := strings.ToLower(strings.TrimSpace(query))
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Exercise
	for _, ex := range c.exercises {
		if strings.Contains(strings.ToLower(ex.Name), q) {
			out = append(out, ex)
		}
	}
	return out
}

// FindByName returns the exercise whose name equals name, ignoring case and
// surrounding whitespace.
func (c *Catalog) FindByName(name string) (models.Exercise, bool) {
	n := strings.TrimSpace(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ex := range c.exercises {
		if strings.EqualFold(ex.Name, n) {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// ByMuscles returns exercises that work every listed muscle. An empty list
// returns the whole catalog.
func (c *Catalog) ByMuscles(muscles []string) []models.Exercise {
	if len(muscles) == 0 {
		return c.All()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[int]int)
	want := 0
	seen := make(map[string]bool)
	for _, m := range muscles {
		m = NormalizeMuscle(m)
		if seen[m] {
			continue
		}
		seen[m] = true
		want++
		for _, i := range c.byMuscle[m] {
			counts[i]++
		}
	}
	return c.filter(func(i int) bool { return counts[i] == want })
}

// ByAnyMuscle returns exercises that work at least one listed muscle. An
// empty list returns the whole catalog.
func (c *Catalog) ByAnyMuscle(muscles []string) []models.Exercise {
	if len(muscles) == 0 {
		return c.All()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	hit := make(map[int]bool)
	for _, m := range muscles {
		for _, i := range c.byMuscle[NormalizeMuscle(m)] {
			hit[i] = true
		}
	}
	return c.filter(func(i int) bool { return hit[i] })
}

// pick and filter return results in catalog order; callers hold mu.
func (c *Catalog) pick(idx []int) []models.Exercise {
	out := make([]models.Exercise, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.exercises[i])
	}
	return out
}

func (c *Catalog) filter(keep func(int) bool) []models.Exercise {
	var out []models.Exercise
	for i, ex := range c.exercises {
		if keep(i) {
			out = append(out, ex)
		}
	}
	return out
}

// Query filters the catalog. Zero fields match everything; set fields
// combine.
type Query struct {
	Text      string   // case-insensitive name substring
	Muscles   []string // all of them, or any of them with AnyMuscle
	AnyMuscle bool
	Force     string
}

// Filter returns the exercises matching q in catalog order.
func (c *Catalog) Filter(q Query) []models.Exercise {
	var result []models.Exercise
	if q.AnyMuscle {
		result = c.ByAnyMuscle(q.Muscles)
	} else {
		result = c.ByMuscles(q.Muscles)
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))
	force := strings.ToLower(strings.TrimSpace(q.Force))
	out := result[:0]
	for _, ex := range result {
		if text != "" && !strings.Contains(strings.ToLower(ex.Name), text) {
			continue
		}
		if force != "" && ex.Force != force {
			continue
		}
		out = append(out, ex)
	}
	return out
}
