package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"

	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/pkg/log"
)

// ServerConfig represents an entry in mcp_config.json
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

type Config struct {
	MCPServers map[string]ServerConfig `json:"mcpServers"`
}

// NativeHandler defines a function signature for internal tools
type NativeHandler func(ctx context.Context, args json.RawMessage) (string, error)

// Manager aggregates native Go tools with tools exposed by external MCP
// servers behind a single core.ToolServer.
type Manager struct {
	mu           sync.RWMutex
	configPath   string
	config       Config
	clients      map[string]*client.Client
	toolToClient map[string]*client.Client

	cachedTools []core.Tool
	cacheValid  bool

	nativeTools    map[string]NativeHandler
	nativeToolDefs []core.Tool
}

func NewManager(ctx context.Context, configPath string) (*Manager, error) {
	mgr := &Manager{
		configPath:   configPath,
		clients:      make(map[string]*client.Client),
		toolToClient: make(map[string]*client.Client),
		nativeTools:  make(map[string]NativeHandler),
	}

	if err := mgr.loadConfig(ctx); err != nil {
		return nil, err
	}

	return mgr, nil
}

// RegisterNativeTool allows adding hardcoded Go functions as tools
func (m *Manager) RegisterNativeTool(name, description string, schema json.RawMessage, handler NativeHandler) {
	m.nativeTools[name] = handler
	m.nativeToolDefs = append(m.nativeToolDefs, core.Tool{
		Type: "function",
		Function: core.Function{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
	})
}

func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cacheValid = false

	for name, srv := range m.config.MCPServers {
		log.FromCtx(ctx).Info().Str("server", name).Msg("starting mcp connection")

		cli, err := m.connectToServer(ctx, srv)
		if err != nil {
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		m.clients[name] = cli
	}
	return nil
}

func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for name, cli := range m.clients {
		if err := cli.Close(); err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("server", name).Msg("failed to close client")
		}
	}
	return nil
}

func (m *Manager) GetTools(ctx context.Context) ([]core.Tool, error) {
	m.mu.RLock()
	if m.cacheValid {
		tools := m.cachedTools
		m.mu.RUnlock()
		return tools, nil
	}
	m.mu.RUnlock()

	allTools := make([]core.Tool, len(m.nativeToolDefs))
	copy(allTools, m.nativeToolDefs)

	// Snapshot clients to avoid holding the lock during network I/O
	m.mu.RLock()
	clientsSnapshot := make(map[string]*client.Client, len(m.clients))
	for k, v := range m.clients {
		clientsSnapshot[k] = v
	}
	m.mu.RUnlock()

	type toolResult struct {
		serverName string
		tools      []mcpproto.Tool
		err        error
	}
	results := make(chan toolResult, len(clientsSnapshot))
	var wg sync.WaitGroup

	for name, cli := range clientsSnapshot {
		wg.Add(1)
		go func(n string, c *client.Client) {
			defer wg.Done()
			tCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			resp, err := c.ListTools(tCtx, mcpproto.ListToolsRequest{})
			if err != nil {
				results <- toolResult{serverName: n, err: err}
				return
			}
			results <- toolResult{serverName: n, tools: resp.Tools}
		}(name, cli)
	}

	wg.Wait()
	close(results)

	newToolToClient := make(map[string]*client.Client)
	for res := range results {
		if res.err != nil {
			log.FromCtx(ctx).Error().Err(res.err).Str("server", res.serverName).Msg("failed to list tools")
			continue
		}

		for _, t := range res.tools {
			// Last server wins on name collisions
			newToolToClient[t.Name] = clientsSnapshot[res.serverName]

			schemaBytes, _ := json.Marshal(t.InputSchema)
			allTools = append(allTools, core.Tool{
				Type: "function",
				Function: core.Function{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  schemaBytes,
				},
			})
		}
	}

	m.mu.Lock()
	m.cachedTools = allTools
	m.toolToClient = newToolToClient
	m.cacheValid = true
	m.mu.Unlock()

	return allTools, nil
}

func (m *Manager) CallTool(ctx context.Context, name string, args string) (string, error) {
	log.FromCtx(ctx).Info().Str("tool", name).Str("args", args).Msg("executing tool")

	// Native tools take precedence over external servers
	if handler, ok := m.nativeTools[name]; ok {
		return handler(ctx, json.RawMessage(args))
	}

	m.mu.RLock()
	cli, ok := m.toolToClient[name]
	m.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}

	var argsMap map[string]interface{}
	if err := json.Unmarshal([]byte(args), &argsMap); err != nil {
		return "", fmt.Errorf("invalid json arguments: %w", err)
	}

	req := mcpproto.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = argsMap

	tCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	res, err := cli.CallTool(tCtx, req)
	if err != nil {
		return "", err
	}

	if res.IsError {
		return "", fmt.Errorf("tool execution failed")
	}

	var output string
	for _, content := range res.Content {
		if text, ok := content.(mcpproto.TextContent); ok {
			output += text.Text + "\n"
		} else if textPtr, ok := content.(*mcpproto.TextContent); ok {
			output += textPtr.Text + "\n"
		}
	}
	return output, nil
}

func (m *Manager) connectToServer(ctx context.Context, srv ServerConfig) (*client.Client, error) {
	var env []string
	for k, v := range srv.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	cli, err := client.NewStdioMCPClient(srv.Command, env, srv.Args...)
	if err != nil {
		return nil, err
	}

	if err := cli.Start(ctx); err != nil {
		return nil, err
	}

	initReq := mcpproto.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpproto.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpproto.Implementation{
		Name:    core.CasaName,
		Version: core.CasaVersion,
	}
	initReq.Params.Capabilities = mcpproto.ClientCapabilities{}

	if _, err := cli.Initialize(ctx, initReq); err != nil {
		_ = cli.Close()
		return nil, err
	}

	return cli, nil
}

func (m *Manager) loadConfig(ctx context.Context) error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.FromCtx(ctx).Info().Msg("mcp_config.json not found, creating default")

			defaultCfg := Config{MCPServers: make(map[string]ServerConfig)}
			data, err = json.MarshalIndent(defaultCfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal default config: %w", err)
			}

			if err := os.WriteFile(m.configPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read mcp config: %w", err)
		}
	}

	if err := json.Unmarshal(data, &m.config); err != nil {
		return fmt.Errorf("failed to parse mcp config: %w", err)
	}
	return nil
}
