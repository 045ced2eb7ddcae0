package estate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Totals(t *testing.T) {
	c := newTestCatalog()
	s := c.Statistics()

	assert.Equal(t, 4, s.TotalProperties)
	assert.Equal(t, 3, s.TotalGroups)

	// Breakdown counts must reconcile with the total.
	furnishedSum := 0
	for _, n := range s.ByFurnished {
		furnishedSum += n
	}
	assert.Equal(t, s.TotalProperties, furnishedSum)

	bedroomSum := 0
	for _, n := range s.ByBedrooms {
		bedroomSum += n
	}
	assert.Equal(t, s.TotalProperties, bedroomSum)

	statusSum := 0
	for _, n := range s.ByStatus {
		statusSum += n
	}
	assert.Equal(t, s.TotalGroups, statusSum)
}

func TestStatistics_Breakdowns(t *testing.T) {
	c := newTestCatalog()
	s := c.Statistics()

	assert.Equal(t, 2, s.ByFurnished[FullyFurnished])
	assert.Equal(t, 1, s.ByFurnished[PartiallyFurnished])
	assert.Equal(t, 1, s.ByFurnished[Unfurnished])

	assert.Equal(t, 2, s.ByBedrooms[2])
	assert.Equal(t, 1, s.ByBedrooms[1])
	assert.Equal(t, 1, s.ByBedrooms[3])

	assert.Equal(t, 1, s.ByStatus[StatusPlanning])
	assert.Equal(t, 1, s.ByStatus[StatusUnderConstruction])
	assert.Equal(t, 1, s.ByStatus[StatusCompleted])

	assert.Equal(t, 1, s.BySegment[SegmentLuxury])
	assert.Equal(t, 1, s.BySegment[SegmentMidRange])
	assert.Equal(t, 1, s.BySegment[SegmentAffordable])
}

func TestStatistics_Ranges(t *testing.T) {
	c := newTestCatalog()
	s := c.Statistics()

	assert.Equal(t, 1_800_000.0, s.Price.Min)
	assert.Equal(t, 7_200_000.0, s.Price.Max)

	props := testProperties()
	var sum float64
	for _, p := range props {
		sum += p.Price
	}
	assert.InDelta(t, sum/float64(len(props)), s.Price.Average, 1e-6)

	assert.Equal(t, 35.0, s.Area.Min)
	assert.Equal(t, 95.0, s.Area.Max)
	assert.InDelta(t, (35.0+68.5+95.0+55.0)/4, s.Area.Average, 1e-6)
}

func TestStatistics_EmptyCatalog(t *testing.T) {
	c := NewCatalog(nil, nil)
	s := c.Statistics()

	require.Equal(t, 0, s.TotalProperties)
	require.Equal(t, 0, s.TotalGroups)
	assert.Zero(t, s.Price.Min)
	assert.Zero(t, s.Price.Max)
	assert.Zero(t, s.Price.Average)
	assert.Empty(t, s.ByFurnished)
}
