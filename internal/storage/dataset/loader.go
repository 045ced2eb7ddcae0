package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sandevgo/casabot/internal/estate"
)

// Load reads the property and project collections from disk and validates
// them enough to hand off to the catalog. Listings keep file order.
func Load(propertiesPath, groupsPath string) ([]estate.Property, []estate.PropertyGroup, error) {
	properties, err := loadProperties(propertiesPath)
	if err != nil {
		return nil, nil, err
	}

	groups, err := loadGroups(groupsPath)
	if err != nil {
		return nil, nil, err
	}

	return properties, groups, nil
}

func loadProperties(path string) ([]estate.Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file: %w", err)
	}

	var properties []estate.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("failed to parse properties file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(properties))
	for i, p := range properties {
		if p.ID == "" {
			return nil, fmt.Errorf("property at index %d has no id", i)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("duplicate property id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return properties, nil
}

func loadGroups(path string) ([]estate.PropertyGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read property groups file: %w", err)
	}

	var groups []estate.PropertyGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse property groups file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(groups))
	for i, g := range groups {
		if g.ID == "" {
			return nil, fmt.Errorf("property group at index %d has no id", i)
		}
		if _, ok := seen[g.ID]; ok {
			return nil, fmt.Errorf("duplicate property group id %q", g.ID)
		}
		seen[g.ID] = struct{}{}
	}

	return groups, nil
}
