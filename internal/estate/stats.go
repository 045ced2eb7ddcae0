package estate

// RangeStats holds min/max/average over a numeric column. Zero for an
// empty collection.
type RangeStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// Statistics is an aggregate snapshot over both collections. Computed fresh
// on each call; the dataset is static and small, caching would only hide bugs.
type Statistics struct {
	TotalProperties int `json:"total_properties"`
	TotalGroups     int `json:"total_groups"`

	ByFurnished map[FurnishedStatus]int `json:"by_furnished"`
	ByBedrooms  map[int]int             `json:"by_bedrooms"`
	ByStatus    map[ProjectStatus]int   `json:"by_status"`
	BySegment   map[Segment]int         `json:"by_segment"`

	Price RangeStats `json:"price"`
	Area  RangeStats `json:"area"`
}

// Statistics computes totals, per-category breakdowns and price/area ranges.
func (c *Catalog) Statistics() Statistics {
	s := Statistics{
		TotalProperties: len(c.properties),
		TotalGroups:     len(c.groups),
		ByFurnished:     make(map[FurnishedStatus]int),
		ByBedrooms:      make(map[int]int),
		ByStatus:        make(map[ProjectStatus]int),
		BySegment:       make(map[Segment]int),
	}

	var priceSum, areaSum float64
	for i, p := range c.properties {
		s.ByFurnished[p.Furnished]++
		s.ByBedrooms[p.Bedrooms]++

		if i == 0 {
			s.Price.Min, s.Price.Max = p.Price, p.Price
			s.Area.Min, s.Area.Max = p.AreaSqm, p.AreaSqm
		}
		if p.Price < s.Price.Min {
			s.Price.Min = p.Price
		}
		if p.Price > s.Price.Max {
			s.Price.Max = p.Price
		}
		if p.AreaSqm < s.Area.Min {
			s.Area.Min = p.AreaSqm
		}
		if p.AreaSqm > s.Area.Max {
			s.Area.Max = p.AreaSqm
		}
		priceSum += p.Price
		areaSum += p.AreaSqm
	}

	if n := len(c.properties); n > 0 {
		s.Price.Average = priceSum / float64(n)
		s.Area.Average = areaSum / float64(n)
	}

	for _, g := range c.groups {
		s.ByStatus[g.Status]++
		s.BySegment[g.Segment]++
	}

	return s
}
