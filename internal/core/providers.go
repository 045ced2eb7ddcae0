package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, history []Message, tools []Tool) (Message, error)
}

// ModelLister is implemented by providers that can enumerate their models.
type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

// ToolServer exposes callable tools to the agent loop. Implementations
// aggregate native Go handlers and, optionally, external MCP servers.
type ToolServer interface {
	GetTools(ctx context.Context) ([]Tool, error)
	CallTool(ctx context.Context, name string, args string) (string, error)
}

type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
}
