package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/estate"
)

const searchPropertiesSchema = `
{
  "type": "object",
  "properties": {
    "min_bedrooms":  { "type": "integer", "description": "Minimum number of bedrooms (inclusive)" },
    "max_bedrooms":  { "type": "integer", "description": "Maximum number of bedrooms (inclusive)" },
    "min_bathrooms": { "type": "integer", "description": "Minimum number of bathrooms (inclusive)" },
    "max_bathrooms": { "type": "integer", "description": "Maximum number of bathrooms (inclusive)" },
    "min_area_sqm":  { "type": "number", "description": "Minimum area in square meters (inclusive)" },
    "max_area_sqm":  { "type": "number", "description": "Maximum area in square meters (inclusive)" },
    "min_price":     { "type": "number", "description": "Minimum price (inclusive)" },
    "max_price":     { "type": "number", "description": "Maximum price (inclusive)" },
    "has_balcony":   { "type": "boolean", "description": "Whether the unit must (or must not) have a balcony" },
    "furnished":     { "type": "string", "enum": ["unfurnished", "partially", "fully"], "description": "Required furnishing status" }
  }
}
`

const propertyByIDSchema = `
{
  "type": "object",
  "properties": {
    "property_id": { "type": "string", "description": "The listing id, e.g. P-001" }
  },
  "required": ["property_id"]
}
`

const searchProjectsSchema = `
{
  "type": "object",
  "properties": {
    "developer": { "type": "string", "description": "Developer name, case-insensitive substring match" },
    "location":  { "type": "string", "description": "Location, case-insensitive substring match" },
    "status":    { "type": "string", "enum": ["planning", "under-construction", "completed"], "description": "Project status" },
    "segment":   { "type": "string", "enum": ["affordable", "mid-range", "luxury"], "description": "Market segment" }
  }
}
`

const projectAmenitiesSchema = `
{
  "type": "object",
  "properties": {
    "group_id": { "type": "string", "description": "The project (property group) id, e.g. G-001" }
  },
  "required": ["group_id"]
}
`

const propertiesByGroupSchema = `
{
  "type": "object",
  "properties": {
    "group_id": { "type": "string", "description": "The project (property group) id to list units for" }
  },
  "required": ["group_id"]
}
`

const emptySchema = `{ "type": "object", "properties": {} }`

// Estate exposes the property catalog to the model as callable tools.
type Estate struct {
	catalog *estate.Catalog
}

func NewEstate(catalog *estate.Catalog) *Estate {
	return &Estate{catalog: catalog}
}

func (e *Estate) SearchProperties(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		MinBedrooms  *int     `json:"min_bedrooms"`
		MaxBedrooms  *int     `json:"max_bedrooms"`
		MinBathrooms *int     `json:"min_bathrooms"`
		MaxBathrooms *int     `json:"max_bathrooms"`
		MinAreaSqm   *float64 `json:"min_area_sqm"`
		MaxAreaSqm   *float64 `json:"max_area_sqm"`
		MinPrice     *float64 `json:"min_price"`
		MaxPrice     *float64 `json:"max_price"`
		HasBalcony   *bool    `json:"has_balcony"`
		Furnished    *string  `json:"furnished"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	criteria := estate.PropertyCriteria{
		MinBedrooms:  input.MinBedrooms,
		MaxBedrooms:  input.MaxBedrooms,
		MinBathrooms: input.MinBathrooms,
		MaxBathrooms: input.MaxBathrooms,
		MinArea:      input.MinAreaSqm,
		MaxArea:      input.MaxAreaSqm,
		MinPrice:     input.MinPrice,
		MaxPrice:     input.MaxPrice,
		HasBalcony:   input.HasBalcony,
	}
	if input.Furnished != nil {
		status, ok := estate.ParseFurnishedStatus(*input.Furnished)
		if !ok {
			return "", fmt.Errorf("unknown furnished status %q", *input.Furnished)
		}
		criteria.Furnished = &status
	}

	results := e.catalog.SearchProperties(criteria)
	if len(results) == 0 {
		return "No properties matched your filters.", nil
	}
	return marshalResult(results)
}

func (e *Estate) PropertyByID(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		PropertyID string `json:"property_id"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	property, err := e.catalog.PropertyByID(input.PropertyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidInput) {
			return err.Error(), nil
		}
		return "", err
	}
	return marshalResult(property)
}

func (e *Estate) PropertySummary(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		PropertyID string `json:"property_id"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	summary, err := e.catalog.PropertySummary(input.PropertyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidInput) {
			return err.Error(), nil
		}
		return "", err
	}
	return summary, nil
}

func (e *Estate) SearchProjects(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Developer string  `json:"developer"`
		Location  string  `json:"location"`
		Status    *string `json:"status"`
		Segment   *string `json:"segment"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	criteria := estate.ProjectCriteria{
		Developer: input.Developer,
		Location:  input.Location,
	}
	if input.Status != nil {
		status, ok := estate.ParseProjectStatus(*input.Status)
		if !ok {
			return "", fmt.Errorf("unknown project status %q", *input.Status)
		}
		criteria.Status = &status
	}
	if input.Segment != nil {
		segment, ok := estate.ParseSegment(*input.Segment)
		if !ok {
			return "", fmt.Errorf("unknown market segment %q", *input.Segment)
		}
		criteria.Segment = &segment
	}

	results := e.catalog.SearchProjects(criteria)
	if len(results) == 0 {
		return "No projects matched your filters.", nil
	}
	return marshalResult(results)
}

func (e *Estate) Statistics(ctx context.Context, args json.RawMessage) (string, error) {
	return marshalResult(e.catalog.Statistics())
}

func (e *Estate) ProjectAmenities(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		GroupID string `json:"group_id"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	amenities, err := e.catalog.ProjectAmenities(input.GroupID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidInput) {
			return err.Error(), nil
		}
		return "", err
	}
	return marshalResult(amenities)
}

func (e *Estate) PropertiesByGroup(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		GroupID string `json:"group_id"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	results := e.catalog.PropertiesByGroupID(input.GroupID)
	if len(results) == 0 {
		return fmt.Sprintf("No properties listed for group %q.", input.GroupID), nil
	}
	return marshalResult(results)
}

func (e *Estate) AllProperties(ctx context.Context, args json.RawMessage) (string, error) {
	return marshalResult(e.catalog.AllProperties())
}

func (e *Estate) AllGroups(ctx context.Context, args json.RawMessage) (string, error) {
	return marshalResult(e.catalog.AllGroups())
}

func marshalResult(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

func (e *Estate) GetDefinitions() map[string]struct {
	Description string
	Schema      string
	Handler     func(context.Context, json.RawMessage) (string, error)
} {
	return map[string]struct {
		Description string
		Schema      string
		Handler     func(context.Context, json.RawMessage) (string, error)
	}{
		"search_properties": {
			"Search property listings by bedrooms, bathrooms, area, price, balcony and furnishing. All bounds are inclusive.",
			searchPropertiesSchema, e.SearchProperties,
		},
		"get_property_by_id": {
			"Get the full record of a single property listing by its id",
			propertyByIDSchema, e.PropertyByID,
		},
		"get_property_summary": {
			"Get a one-sentence human-readable summary of a property listing",
			propertyByIDSchema, e.PropertySummary,
		},
		"search_projects": {
			"Search development projects by developer, location, status and market segment",
			searchProjectsSchema, e.SearchProjects,
		},
		"get_project_statistics": {
			"Get aggregate statistics over the whole catalog: counts, breakdowns, price and area ranges",
			emptySchema, e.Statistics,
		},
		"get_project_amenities": {
			"Get the internal and surrounding amenities of a development project",
			projectAmenitiesSchema, e.ProjectAmenities,
		},
		"get_properties_by_group_id": {
			"List all property listings that belong to a development project",
			propertiesByGroupSchema, e.PropertiesByGroup,
		},
		"get_all_properties": {
			"List every property in the catalog",
			emptySchema, e.AllProperties,
		},
		"get_all_property_groups": {
			"List every development project in the catalog",
			emptySchema, e.AllGroups,
		},
	}
}
