package agent

import (
	"context"
	"fmt"

	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/service/memory"
	"github.com/sandevgo/casabot/pkg/log"
)

type HistoryRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg core.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]core.Message, error)
}

type AIProvider interface {
	Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error)
}

type Config struct {
	ContextWindowSize  int
	ContextTokenBudget int
}

// Agent drives one turn of the conversation: capture preferences, build the
// prompt, let the model call tools until it settles on an answer.
type Agent struct {
	cfg       Config
	ai        AIProvider
	tools     core.ToolServer
	repo      HistoryRepository
	sessions  *memory.Sessions
	prompt    *memory.SysPrompt
	tokenizer memory.Tokenizer
	executor  *Executor
}

func NewAgent(
	cfg Config,
	ai AIProvider,
	tools core.ToolServer,
	repo HistoryRepository,
	sessions *memory.Sessions,
	prompt *memory.SysPrompt,
	tokenizer memory.Tokenizer,
) *Agent {
	return &Agent{
		cfg:       cfg,
		ai:        ai,
		tools:     tools,
		repo:      repo,
		sessions:  sessions,
		prompt:    prompt,
		tokenizer: tokenizer,
		executor:  NewExecutor(tools),
	}
}

func (a *Agent) Run(ctx context.Context, sessionID string, input string, onUpdate func(core.Message)) (string, error) {
	logger := log.FromCtx(ctx)

	store := a.sessions.Get(sessionID)
	if detected := store.DetectAndStore(input); len(detected) > 0 {
		logger.Debug().Int("count", len(detected)).Msg("captured user preferences")
	}

	userMsg := core.Message{Role: core.RoleUser, Content: input}
	if err := a.repo.AddMessage(ctx, sessionID, userMsg); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	var finalContent string

	for {
		tools, err := a.tools.GetTools(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get tools: %w", err)
		}

		history, err := a.repo.GetMessages(ctx, sessionID, a.cfg.ContextWindowSize)
		if err != nil {
			return "", fmt.Errorf("failed to fetch history: %w", err)
		}
		history = sanitizeToolCalls(history)
		if a.cfg.ContextTokenBudget > 0 {
			history = memory.TrimHistory(history, a.cfg.ContextTokenBudget, a.tokenizer)
		}

		messages := append(a.prompt.Build(store), history...)

		responseMsg, err := a.ai.Chat(ctx, messages, tools)
		if err != nil {
			return "", fmt.Errorf("ai chat error: %w", err)
		}

		if err := a.repo.AddMessage(ctx, sessionID, responseMsg); err != nil {
			logger.Error().Err(err).Msg("failed to save assistant message")
		}

		if onUpdate != nil {
			onUpdate(responseMsg)
		}

		if responseMsg.Content != "" {
			finalContent = responseMsg.Content
		}

		if len(responseMsg.ToolCalls) == 0 {
			break
		}

		for _, toolMsg := range a.executor.Execute(ctx, responseMsg.ToolCalls) {
			if err := a.repo.AddMessage(ctx, sessionID, toolMsg); err != nil {
				logger.Error().Err(err).Msg("failed to save tool message")
			}
		}
	}

	return finalContent, nil
}

// sanitizeToolCalls drops tool messages whose call id does not match a
// preceding assistant tool call. A trimmed window can otherwise start with
// an orphaned tool result, which most APIs reject.
func sanitizeToolCalls(msgs []core.Message) []core.Message {
	var out []core.Message
	pending := make(map[string]bool)

	for _, m := range msgs {
		if m.Role == core.RoleTool {
			if !pending[m.ToolCallID] {
				continue
			}
			out = append(out, m)
			continue
		}

		if m.Role == core.RoleAssistant && len(m.ToolCalls) > 0 {
			pending = make(map[string]bool)
			for _, tc := range m.ToolCalls {
				pending[tc.ID] = true
			}
		}
		out = append(out, m)
	}
	return out
}
