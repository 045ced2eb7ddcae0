package estate

import "strings"

// PropertyCriteria is a configuration of optional filters combined with
// logical AND. Nil fields impose no constraint. Numeric bounds are
// closed intervals: a record passes when min <= value <= max.
type PropertyCriteria struct {
	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *int
	MaxBathrooms *int
	MinArea      *float64
	MaxArea      *float64
	MinPrice     *float64
	MaxPrice     *float64
	HasBalcony   *bool
	Furnished    *FurnishedStatus
}

// Matches reports whether p satisfies every filter set on c.
func (c PropertyCriteria) Matches(p Property) bool {
	if !inIntRange(p.Bedrooms, c.MinBedrooms, c.MaxBedrooms) {
		return false
	}
	if !inIntRange(p.Bathrooms, c.MinBathrooms, c.MaxBathrooms) {
		return false
	}
	if !inFloatRange(p.AreaSqm, c.MinArea, c.MaxArea) {
		return false
	}
	if !inFloatRange(p.Price, c.MinPrice, c.MaxPrice) {
		return false
	}
	if c.HasBalcony != nil && p.HasBalcony != *c.HasBalcony {
		return false
	}
	if c.Furnished != nil && p.Furnished != *c.Furnished {
		return false
	}
	return true
}

// ProjectCriteria filters developments. Developer and Location are
// case-insensitive substring matches; Status and Segment are exact.
type ProjectCriteria struct {
	Developer string
	Location  string
	Status    *ProjectStatus
	Segment   *Segment
}

// Matches reports whether g satisfies every filter set on c.
func (c ProjectCriteria) Matches(g PropertyGroup) bool {
	if c.Developer != "" && !containsFold(g.Developer, c.Developer) {
		return false
	}
	if c.Location != "" && !containsFold(g.Location, c.Location) {
		return false
	}
	if c.Status != nil && g.Status != *c.Status {
		return false
	}
	if c.Segment != nil && g.Segment != *c.Segment {
		return false
	}
	return true
}

func inIntRange(v int, min, max *int) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func inFloatRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
