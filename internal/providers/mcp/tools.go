package mcp

import (
	"context"
	"encoding/json"

	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/estate"
	"github.com/sandevgo/casabot/internal/providers/mcp/tools"
)

type tool interface {
	GetDefinitions() map[string]struct {
		Description string
		Schema      string
		Handler     func(context.Context, json.RawMessage) (string, error)
	}
}

// RegisterNativeTools builds the built-in tool set: the property catalog
// tools plus the web fetcher.
func RegisterNativeTools(catalog *estate.Catalog) (map[string]NativeHandler, []core.Tool) {
	handlers := make(map[string]NativeHandler)
	var defs []core.Tool

	register := func(t tool) {
		for name, def := range t.GetDefinitions() {
			handlers[name] = def.Handler
			defs = append(defs, core.Tool{
				Type: "function",
				Function: core.Function{
					Name:        name,
					Description: def.Description,
					Parameters:  json.RawMessage(def.Schema),
				},
			})
		}
	}

	register(tools.NewEstate(catalog))
	register(tools.NewFetch())

	return handlers, defs
}
