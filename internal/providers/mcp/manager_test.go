package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mgr, err := NewManager(context.Background(), filepath.Join(t.TempDir(), "mcp_config.json"))
	require.NoError(t, err)
	return mgr
}

func TestNewManagerCreatesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcp_config.json")

	_, err := NewManager(context.Background(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Empty(t, cfg.MCPServers)
}

func TestNewManagerRejectsMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewManager(context.Background(), path)
	assert.Error(t, err)
}

func TestNativeToolDispatch(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	mgr.RegisterNativeTool("echo", "Echo the input back", json.RawMessage(`{"type":"object"}`),
		func(ctx context.Context, args json.RawMessage) (string, error) {
			var input struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(args, &input); err != nil {
				return "", err
			}
			return input.Text, nil
		})

	tools, err := mgr.GetTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "echo", tools[0].Function.Name)

	out, err := mgr.CallTool(ctx, "echo", `{"text": "hello"}`)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestCallToolUnknownName(t *testing.T) {
	mgr := newTestManager(t)

	_, err := mgr.CallTool(context.Background(), "does_not_exist", "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool not found")
}

func TestGetToolsCaches(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	mgr.RegisterNativeTool("a", "", json.RawMessage(`{}`), func(context.Context, json.RawMessage) (string, error) {
		return "", nil
	})

	first, err := mgr.GetTools(ctx)
	require.NoError(t, err)

	// Registrations after the first listing are not visible until the
	// cache is invalidated by Start.
	mgr.RegisterNativeTool("b", "", json.RawMessage(`{}`), func(context.Context, json.RawMessage) (string, error) {
		return "", nil
	})

	second, err := mgr.GetTools(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))

	require.NoError(t, mgr.Start(ctx))
	third, err := mgr.GetTools(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}
