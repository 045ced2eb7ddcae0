package agent

import (
	"context"
	"fmt"

	"github.com/sandevgo/casabot/internal/core"
)

type Executor struct {
	tools core.ToolServer
}

func NewExecutor(tools core.ToolServer) *Executor {
	return &Executor{
		tools: tools,
	}
}

func (e *Executor) Execute(ctx context.Context, toolCalls []core.ToolCall) []core.Message {
	var results []core.Message
	for _, tc := range toolCalls {
		res, err := e.tools.CallTool(ctx, tc.Function.Name, tc.Function.Arguments)
		if err != nil {
			res = fmt.Sprintf("Error: %v", err)
		}

		results = append(results, core.Message{
			Role:       core.RoleTool,
			Content:    e.truncate(res),
			ToolCallID: tc.ID,
		})
	}
	return results
}

func (e *Executor) truncate(input string) string {
	const maxLen = 2000
	if len(input) <= maxLen {
		return input
	}

	head := input[:500]
	tail := input[len(input)-(maxLen-500):]
	return fmt.Sprintf("%s\n\n... [TRUNCATED %d bytes] ...\n\n%s", head, len(input)-maxLen, tail)
}
