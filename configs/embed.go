// Package configs holds the default runtime assets seeded by the installer.
package configs

import "embed"

//go:embed SYSTEM.md IDENTITY.md mcp_config.json properties.json property_groups.json
var FS embed.FS
