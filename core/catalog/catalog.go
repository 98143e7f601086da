// Package catalog provides a read-only view over the static spot dataset.
// All queries are pure reads; the catalog never changes after construction.
package catalog

import (
	"sort"

	"github.com/mhoffer/parkcast/core/dataset"
	"github.com/mhoffer/parkcast/core/model"
)

type sectionKey struct {
	spotID  int
	section string
}

// Catalog answers which spots exist where and what their static attributes
// are. Duplicate (spot, section) rows resolve to the most recent one, which
// is the last row in dataset order.
type Catalog struct {
	table    *dataset.Table
	sections []string
	spots    map[string][]int
	byKey    map[sectionKey]model.Spot
}

// New builds a Catalog from the loaded dataset.
func New(table *dataset.Table) *Catalog {
	c := &Catalog{
		table: table,
		spots: make(map[string][]int),
		byKey: make(map[sectionKey]model.Spot),
	}

	seen := make(map[string]map[int]struct{})
	for _, rec := range table.Records() {
		if seen[rec.Section] == nil {
			seen[rec.Section] = make(map[int]struct{})
		}
		seen[rec.Section][rec.SpotID] = struct{}{}
		// Later rows overwrite earlier ones: last row wins.
		c.byKey[sectionKey{rec.SpotID, rec.Section}] = rec.Spot()
	}

	for section, ids := range seen {
		c.sections = append(c.sections, section)
		list := make([]int, 0, len(ids))
		for id := range ids {
			list = append(list, id)
		}
		sort.Ints(list)
		c.spots[section] = list
	}
	sort.Strings(c.sections)
	return c
}

// Sections returns the section names in lexicographic order.
func (c *Catalog) Sections() []string {
	out := make([]string, len(c.sections))
	copy(out, c.sections)
	return out
}

// SpotsIn returns the spot ids of a section in ascending order. Unknown
// sections yield an empty slice.
func (c *Catalog) SpotsIn(section string) []int {
	ids := c.spots[section]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Spot returns the static attributes of a spot, or false when the
// (id, section) pair does not exist.
func (c *Catalog) Spot(id int, section string) (model.Spot, bool) {
	s, ok := c.byKey[sectionKey{id, section}]
	return s, ok
}

// Table exposes the underlying dataset for pattern learning.
func (c *Catalog) Table() *dataset.Table { return c.table }
