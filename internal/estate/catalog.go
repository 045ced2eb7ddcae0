// Package estate answers read-only queries against the two fixed collections
// of the demo dataset: properties and property groups (projects).
//
// The collections are handed in already parsed and never change afterwards,
// so a Catalog can be shared across sessions without synchronization.
// Queries are linear scans; at the target scale (hundreds to low thousands
// of records) indexing beyond the ID map would buy nothing.
package estate

import (
	"fmt"

	"github.com/sandevgo/casabot/internal/core"
)

type Catalog struct {
	properties []Property
	groups     []PropertyGroup

	byID      map[string]int // property ID -> index in properties
	groupByID map[string]int // group ID -> index in groups
}

// NewCatalog builds a catalog over the given collections. The slices are
// retained as-is; callers must not mutate them afterwards.
func NewCatalog(properties []Property, groups []PropertyGroup) *Catalog {
	c := &Catalog{
		properties: properties,
		groups:     groups,
		byID:       make(map[string]int, len(properties)),
		groupByID:  make(map[string]int, len(groups)),
	}
	for i, p := range properties {
		c.byID[p.ID] = i
	}
	for i, g := range groups {
		c.groupByID[g.ID] = i
	}
	return c
}

// SearchProperties returns the properties satisfying all filters set on
// criteria, in original load order. An empty result is a normal empty
// slice, never an error.
func (c *Catalog) SearchProperties(criteria PropertyCriteria) []Property {
	out := make([]Property, 0)
	for _, p := range c.properties {
		if criteria.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// PropertyByID looks up a single property by its identifier.
func (c *Catalog) PropertyByID(id string) (Property, error) {
	if id == "" {
		return Property{}, fmt.Errorf("property id is empty: %w", core.ErrInvalidInput)
	}
	i, ok := c.byID[id]
	if !ok {
		return Property{}, fmt.Errorf("no property with id %q: %w", id, core.ErrNotFound)
	}
	return c.properties[i], nil
}

// PropertySummary renders a one-sentence human-readable description of a
// property. Lookup failures are the same as PropertyByID.
func (c *Catalog) PropertySummary(id string) (string, error) {
	p, err := c.PropertyByID(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Property %s: %d bedroom(s), %d bathroom(s), %.1f m², %s furnished, priced at %.0f.",
		p.ID, p.Bedrooms, p.Bathrooms, p.AreaSqm, furnishedLabel(p.Furnished), p.Price,
	), nil
}

// SearchProjects returns the property groups satisfying all filters set on
// criteria, in original load order.
func (c *Catalog) SearchProjects(criteria ProjectCriteria) []PropertyGroup {
	out := make([]PropertyGroup, 0)
	for _, g := range c.groups {
		if criteria.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}

// ProjectAmenities returns the internal and surrounding amenity sets of a
// development.
func (c *Catalog) ProjectAmenities(groupID string) (Amenities, error) {
	if groupID == "" {
		return Amenities{}, fmt.Errorf("group id is empty: %w", core.ErrInvalidInput)
	}
	i, ok := c.groupByID[groupID]
	if !ok {
		return Amenities{}, fmt.Errorf("no project with id %q: %w", groupID, core.ErrNotFound)
	}
	g := c.groups[i]
	return Amenities{
		Internal:    append([]string(nil), g.InternalAmenities...),
		Surrounding: append([]string(nil), g.SurroundingAmenities...),
	}, nil
}

// PropertiesByGroupID returns the properties referencing groupID, in load
// order. A group with no properties and a group ID that does not exist both
// yield an empty slice; the engine does not distinguish the two cases.
func (c *Catalog) PropertiesByGroupID(groupID string) []Property {
	out := make([]Property, 0)
	for _, p := range c.properties {
		if p.GroupID == groupID && groupID != "" {
			out = append(out, p)
		}
	}
	return out
}

// AllProperties returns the full property collection in load order.
// The returned slice is a copy; the records themselves are values.
func (c *Catalog) AllProperties() []Property {
	out := make([]Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// AllGroups returns the full group collection in load order, copied.
func (c *Catalog) AllGroups() []PropertyGroup {
	out := make([]PropertyGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

func furnishedLabel(f FurnishedStatus) string {
	switch f {
	case FullyFurnished:
		return "fully"
	case PartiallyFurnished:
		return "partially"
	default:
		return "not"
	}
}
