package estate

import "strings"

// FurnishedStatus describes how a unit is delivered.
type FurnishedStatus string

const (
	Unfurnished        FurnishedStatus = "unfurnished"
	PartiallyFurnished FurnishedStatus = "partially"
	FullyFurnished     FurnishedStatus = "fully"
)

// ProjectStatus describes the build phase of a development.
type ProjectStatus string

const (
	StatusPlanning          ProjectStatus = "planning"
	StatusUnderConstruction ProjectStatus = "under-construction"
	StatusCompleted         ProjectStatus = "completed"
)

// Segment is the market tier of a development.
type Segment string

const (
	SegmentAffordable Segment = "affordable"
	SegmentMidRange   Segment = "mid-range"
	SegmentLuxury     Segment = "luxury"
)

// Property is a single real-estate unit. Records are immutable after load;
// identity is the ID field, unique across the collection.
type Property struct {
	ID         string          `json:"id"`
	Bedrooms   int             `json:"bedrooms"`
	Bathrooms  int             `json:"bathrooms"`
	AreaSqm    float64         `json:"area_sqm"`
	HasBalcony bool            `json:"has_balcony"`
	Furnished  FurnishedStatus `json:"furnished"`
	Price      float64         `json:"price"`
	GroupID    string          `json:"group_id,omitempty"`
}

// PropertyGroup is a development (project) holding zero or more properties.
// The reference lives on the child: Property.GroupID.
type PropertyGroup struct {
	ID                   string        `json:"id"`
	Developer            string        `json:"developer"`
	Location             string        `json:"location"`
	Status               ProjectStatus `json:"status"`
	Segment              Segment       `json:"segment"`
	InternalAmenities    []string      `json:"internal_amenities"`
	SurroundingAmenities []string      `json:"surrounding_amenities"`
}

// Amenities holds the two amenity sets of a development.
type Amenities struct {
	Internal    []string `json:"internal"`
	Surrounding []string `json:"surrounding"`
}

// ParseFurnishedStatus maps free-form input to a FurnishedStatus.
// Returns false for anything it does not recognize.
func ParseFurnishedStatus(s string) (FurnishedStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unfurnished", "none":
		return Unfurnished, true
	case "partially", "partial", "semi-furnished":
		return PartiallyFurnished, true
	case "fully", "full", "furnished":
		return FullyFurnished, true
	}
	return "", false
}

// ParseProjectStatus maps free-form input to a ProjectStatus.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planning":
		return StatusPlanning, true
	case "under-construction", "under construction", "construction":
		return StatusUnderConstruction, true
	case "completed", "complete":
		return StatusCompleted, true
	}
	return "", false
}

// ParseSegment maps free-form input to a market Segment.
func ParseSegment(s string) (Segment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "affordable", "budget":
		return SegmentAffordable, true
	case "mid-range", "midrange", "mid":
		return SegmentMidRange, true
	case "luxury", "high-end":
		return SegmentLuxury, true
	}
	return "", false
}
