package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/casabot/internal/estate"
)

func newTestEstate() *Estate {
	properties := []estate.Property{
		{ID: "P-001", Bedrooms: 1, Bathrooms: 1, AreaSqm: 32.5, HasBalcony: false, Furnished: estate.Unfurnished, Price: 2100000, GroupID: "G-001"},
		{ID: "P-002", Bedrooms: 2, Bathrooms: 2, AreaSqm: 58, HasBalcony: true, Furnished: estate.FullyFurnished, Price: 4600000, GroupID: "G-001"},
		{ID: "P-003", Bedrooms: 3, Bathrooms: 3, AreaSqm: 120, HasBalcony: true, Furnished: estate.PartiallyFurnished, Price: 12500000, GroupID: "G-002"},
	}
	groups := []estate.PropertyGroup{
		{ID: "G-001", Developer: "Sansiri", Location: "Sukhumvit, Bangkok", Status: estate.StatusCompleted, Segment: estate.SegmentMidRange,
			InternalAmenities: []string{"pool", "gym"}, SurroundingAmenities: []string{"BTS station"}},
		{ID: "G-002", Developer: "AP Thai", Location: "Sathorn, Bangkok", Status: estate.StatusUnderConstruction, Segment: estate.SegmentLuxury},
	}
	return NewEstate(estate.NewCatalog(properties, groups))
}

func TestSearchPropertiesTool(t *testing.T) {
	e := newTestEstate()
	ctx := context.Background()

	out, err := e.SearchProperties(ctx, json.RawMessage(`{"min_bedrooms": 2, "has_balcony": true}`))
	require.NoError(t, err)

	var results []estate.Property
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "P-002", results[0].ID)
	assert.Equal(t, "P-003", results[1].ID)
}

func TestSearchPropertiesToolAreaBounds(t *testing.T) {
	e := newTestEstate()

	out, err := e.SearchProperties(context.Background(), json.RawMessage(`{"min_area_sqm": 58, "max_area_sqm": 58}`))
	require.NoError(t, err)

	var results []estate.Property
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "P-002", results[0].ID)
	assert.Equal(t, 58.0, results[0].AreaSqm)
}

func TestSearchPropertiesToolEmptyResult(t *testing.T) {
	e := newTestEstate()

	out, err := e.SearchProperties(context.Background(), json.RawMessage(`{"min_price": 99000000}`))
	require.NoError(t, err)
	assert.Equal(t, "No properties matched your filters.", out)
}

func TestSearchPropertiesToolRejectsBadFurnished(t *testing.T) {
	e := newTestEstate()

	_, err := e.SearchProperties(context.Background(), json.RawMessage(`{"furnished": "sort-of"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown furnished status "sort-of"`)
}

func TestPropertyByIDTool(t *testing.T) {
	e := newTestEstate()
	ctx := context.Background()

	out, err := e.PropertyByID(ctx, json.RawMessage(`{"property_id": "P-001"}`))
	require.NoError(t, err)

	var p estate.Property
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "P-001", p.ID)

	// Unknown ids come back as a message for the model, not a hard error
	out, err = e.PropertyByID(ctx, json.RawMessage(`{"property_id": "P-999"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "P-999")
}

func TestPropertySummaryTool(t *testing.T) {
	e := newTestEstate()

	out, err := e.PropertySummary(context.Background(), json.RawMessage(`{"property_id": "P-002"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "Property P-002")
	assert.Contains(t, out, "2 bedroom(s)")
}

func TestSearchProjectsTool(t *testing.T) {
	e := newTestEstate()

	out, err := e.SearchProjects(context.Background(), json.RawMessage(`{"developer": "sansiri", "status": "completed"}`))
	require.NoError(t, err)

	var results []estate.PropertyGroup
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "G-001", results[0].ID)
}

func TestStatisticsTool(t *testing.T) {
	e := newTestEstate()

	out, err := e.Statistics(context.Background(), nil)
	require.NoError(t, err)

	var stats estate.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 3, stats.TotalProperties)
	assert.Equal(t, 2, stats.TotalGroups)
}

func TestProjectAmenitiesTool(t *testing.T) {
	e := newTestEstate()

	out, err := e.ProjectAmenities(context.Background(), json.RawMessage(`{"group_id": "G-001"}`))
	require.NoError(t, err)

	var amenities estate.Amenities
	require.NoError(t, json.Unmarshal([]byte(out), &amenities))
	assert.Equal(t, []string{"pool", "gym"}, amenities.Internal)
}

func TestPropertiesByGroupTool(t *testing.T) {
	e := newTestEstate()
	ctx := context.Background()

	out, err := e.PropertiesByGroup(ctx, json.RawMessage(`{"group_id": "G-002"}`))
	require.NoError(t, err)

	var results []estate.Property
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "P-003", results[0].ID)

	// Unknown and empty groups read the same
	out, err = e.PropertiesByGroup(ctx, json.RawMessage(`{"group_id": "G-999"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "No properties listed")
}

func TestAllCollectionsTools(t *testing.T) {
	e := newTestEstate()
	ctx := context.Background()

	out, err := e.AllProperties(ctx, nil)
	require.NoError(t, err)
	var props []estate.Property
	require.NoError(t, json.Unmarshal([]byte(out), &props))
	assert.Len(t, props, 3)

	out, err = e.AllGroups(ctx, nil)
	require.NoError(t, err)
	var groups []estate.PropertyGroup
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	assert.Len(t, groups, 2)
}

func TestGetDefinitionsCoversAllTools(t *testing.T) {
	defs := newTestEstate().GetDefinitions()

	expected := []string{
		"search_properties",
		"get_property_by_id",
		"get_property_summary",
		"search_projects",
		"get_project_statistics",
		"get_project_amenities",
		"get_properties_by_group_id",
		"get_all_properties",
		"get_all_property_groups",
	}
	for _, name := range expected {
		assert.Contains(t, defs, name)
	}
	assert.Len(t, defs, len(expected))
}
