package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/casabot/internal/estate"
)

// StatsCommand prints catalog statistics without a model round-trip.
type StatsCommand struct {
	catalog   *estate.Catalog
	formatter *ResponseFormatter
}

func NewStatsCommand(catalog *estate.Catalog) *StatsCommand {
	return &StatsCommand{
		catalog:   catalog,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatsCommand) Name() string {
	return "stats"
}

func (c *StatsCommand) Description() string {
	return "Show property catalog statistics"
}

func (c *StatsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	stats := c.catalog.Statistics()

	sections := []string{
		c.formatter.Info("Catalog Statistics"),
		c.formatter.Label("Properties", fmt.Sprintf("%d", stats.TotalProperties)),
		c.formatter.Label("Projects", fmt.Sprintf("%d", stats.TotalGroups)),
	}

	if stats.TotalProperties > 0 {
		sections = append(sections,
			c.formatter.Label("Price range", fmt.Sprintf("%.0f - %.0f (avg %.0f)", stats.Price.Min, stats.Price.Max, stats.Price.Average)),
			c.formatter.Label("Area range", fmt.Sprintf("%.1f - %.1f m² (avg %.1f)", stats.Area.Min, stats.Area.Max, stats.Area.Average)),
			c.formatter.Section("🛏", "By furnishing", c.formatter.List(formatBreakdown(stats.ByFurnished))),
		)
	}
	if stats.TotalGroups > 0 {
		sections = append(sections,
			c.formatter.Section("🏗", "By status", c.formatter.List(formatBreakdown(stats.ByStatus))),
			c.formatter.Section("🏷", "By segment", c.formatter.List(formatBreakdown(stats.BySegment))),
		)
	}

	return c.formatter.Combine(sections...), nil
}

func formatBreakdown[K ~string](m map[K]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", k, m[K(k)]))
	}
	return lines
}
