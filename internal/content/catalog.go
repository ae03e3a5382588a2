// Package content holds the authored study material that plans are built from.
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/quickhire/internal/models"
)

var ErrEmptyCatalog = errors.New("catalog has no technologies")

// Catalog is an immutable, ordered set of technology tracks. The first
// technology is the default used for unknown lookups.
type Catalog struct {
	sets  []models.TechnologyContentSet
	index map[string]int
}

// New validates sets and builds a catalog from them in the given order.
func New(sets ...models.TechnologyContentSet) (*Catalog, error) {
	if len(sets) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		sets:  make([]models.TechnologyContentSet, 0, len(sets)),
		index: make(map[string]int),
	}
	for _, set := range sets {
		if err := validateSet(set); err != nil {
			return nil, err
		}
		pos := len(c.sets)
		for _, key := range append([]string{set.Name}, set.Aliases...) {
			k := normalize(key)
			if k == "" {
				continue
			}
			if prev, dup := c.index[k]; dup {
				return nil, fmt.Errorf("technology %q: name or alias %q already used by %q", set.Name, key, c.sets[prev].Name)
			}
			c.index[k] = pos
		}
		c.sets = append(c.sets, set)
	}
	return c, nil
}

func validateSet(set models.TechnologyContentSet) error {
	if strings.TrimSpace(set.Name) == "" {
		return errors.New("technology with empty name")
	}
	if len(set.Days) == 0 {
		return fmt.Errorf("technology %q has no days", set.Name)
	}
	for i, day := range set.Days {
		if day.Day != i+1 {
			return fmt.Errorf("technology %q: day %d found at position %d, days must be numbered from 1 without gaps", set.Name, day.Day, i+1)
		}
		if strings.TrimSpace(day.Title) == "" {
			return fmt.Errorf("technology %q: day %d has no title", set.Name, day.Day)
		}
		if strings.TrimSpace(day.ExplanationsByLevel[models.LevelBeginner]) == "" {
			return fmt.Errorf("technology %q: day %d has no beginner explanation", set.Name, day.Day)
		}
	}
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a technology by name or alias, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (models.TechnologyContentSet, bool) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return models.TechnologyContentSet{}, false
	}
	return c.sets[i], true
}

// Default returns the first technology in the catalog.
func (c *Catalog) Default() models.TechnologyContentSet {
	return c.sets[0]
}

// Technologies returns the technology names in catalog order.
func (c *Catalog) Technologies() []string {
	names := make([]string, len(c.sets))
	for i, s := range c.sets {
		names[i] = s.Name
	}
	return names
}

// Sets returns the content sets in catalog order. The slice is a copy.
func (c *Catalog) Sets() []models.TechnologyContentSet {
	return append([]models.TechnologyContentSet(nil), c.sets...)
}

func (c *Catalog) Len() int {
	return len(c.sets)
}
