package agent

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/service/memory"
)

func TestSanitizeToolCalls(t *testing.T) {
	tests := []struct {
		name     string
		input    []core.Message
		expected []core.Message
	}{
		{
			name:     "empty messages",
			input:    []core.Message{},
			expected: nil,
		},
		{
			name: "normal conversation",
			input: []core.Message{
				{Role: core.RoleUser, Content: "hi"},
				{Role: core.RoleAssistant, Content: "calling tool", ToolCalls: []core.ToolCall{{ID: "call_1"}}},
				{Role: core.RoleTool, ToolCallID: "call_1", Content: "result"},
			},
			expected: []core.Message{
				{Role: core.RoleUser, Content: "hi"},
				{Role: core.RoleAssistant, Content: "calling tool", ToolCalls: []core.ToolCall{{ID: "call_1"}}},
				{Role: core.RoleTool, ToolCallID: "call_1", Content: "result"},
			},
		},
		{
			name: "orphaned tool call at start",
			input: []core.Message{
				{Role: core.RoleTool, ToolCallID: "call_1", Content: "result"},
				{Role: core.RoleUser, Content: "hi"},
			},
			expected: []core.Message{
				{Role: core.RoleUser, Content: "hi"},
			},
		},
		{
			name: "tool call id mismatch",
			input: []core.Message{
				{Role: core.RoleAssistant, Content: "calling tool", ToolCalls: []core.ToolCall{{ID: "call_1"}}},
				{Role: core.RoleTool, ToolCallID: "call_2", Content: "result"},
			},
			expected: []core.Message{
				{Role: core.RoleAssistant, Content: "calling tool", ToolCalls: []core.ToolCall{{ID: "call_1"}}},
			},
		},
		{
			name: "multiple valid tool calls",
			input: []core.Message{
				{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{{ID: "call_1"}, {ID: "call_2"}}},
				{Role: core.RoleTool, ToolCallID: "call_1", Content: "result 1"},
				{Role: core.RoleTool, ToolCallID: "call_2", Content: "result 2"},
			},
			expected: []core.Message{
				{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{{ID: "call_1"}, {ID: "call_2"}}},
				{Role: core.RoleTool, ToolCallID: "call_1", Content: "result 1"},
				{Role: core.RoleTool, ToolCallID: "call_2", Content: "result 2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeToolCalls(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("sanitizeToolCalls() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestExecutorTruncatesLongResults(t *testing.T) {
	server := &fakeToolServer{
		result: strings.Repeat("x", 5000),
	}
	e := NewExecutor(server)

	results := e.Execute(context.Background(), []core.ToolCall{
		{ID: "call_1", Function: core.FunctionCall{Name: "get_all_properties"}},
	})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].Content) > 2100 {
		t.Errorf("result not truncated: %d bytes", len(results[0].Content))
	}
	if !strings.Contains(results[0].Content, "TRUNCATED") {
		t.Errorf("expected truncation marker in %q", results[0].Content[:100])
	}
}

// fakeToolServer returns a fixed result for any call.
type fakeToolServer struct {
	result string
	calls  []string
}

func (f *fakeToolServer) GetTools(ctx context.Context) ([]core.Tool, error) {
	return []core.Tool{{Type: "function", Function: core.Function{Name: "search_properties"}}}, nil
}

func (f *fakeToolServer) CallTool(ctx context.Context, name string, args string) (string, error) {
	f.calls = append(f.calls, name)
	return f.result, nil
}

// scriptedAI plays back canned responses in order.
type scriptedAI struct {
	responses []core.Message
	seen      [][]core.Message
	i         int
}

func (s *scriptedAI) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	s.seen = append(s.seen, history)
	msg := s.responses[s.i]
	if s.i < len(s.responses)-1 {
		s.i++
	}
	return msg, nil
}

// memRepo is an in-memory HistoryRepository.
type memRepo struct {
	mu   sync.Mutex
	msgs map[string][]core.Message
}

func newMemRepo() *memRepo {
	return &memRepo{msgs: make(map[string][]core.Message)}
}

func (r *memRepo) AddMessage(ctx context.Context, sessionID string, msg core.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs[sessionID] = append(r.msgs[sessionID], msg)
	return nil
}

func (r *memRepo) GetMessages(ctx context.Context, sessionID string, limit int) ([]core.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.msgs[sessionID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]core.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

type promptPaths struct{}

func (promptPaths) GetSystemPath() string   { return "" }
func (promptPaths) GetIdentityPath() string { return "" }

func newTestAgent(ai AIProvider, tools core.ToolServer, repo HistoryRepository) *Agent {
	return NewAgent(
		Config{ContextWindowSize: 30, ContextTokenBudget: 0},
		ai,
		tools,
		repo,
		memory.NewSessions(),
		memory.NewSysPrompt(promptPaths{}),
		nil,
	)
}

func TestAgentRunPlainAnswer(t *testing.T) {
	ai := &scriptedAI{responses: []core.Message{
		{Role: core.RoleAssistant, Content: "Hello, how can I help?"},
	}}
	repo := newMemRepo()
	a := newTestAgent(ai, &fakeToolServer{}, repo)

	out, err := a.Run(context.Background(), "s1", "hi", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != "Hello, how can I help?" {
		t.Errorf("unexpected answer: %q", out)
	}

	msgs, _ := repo.GetMessages(context.Background(), "s1", 10)
	if len(msgs) != 2 {
		t.Fatalf("expected user + assistant saved, got %d messages", len(msgs))
	}
}

func TestAgentRunWithToolCall(t *testing.T) {
	ai := &scriptedAI{responses: []core.Message{
		{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: core.FunctionCall{Name: "search_properties", Arguments: "{}"},
		}}},
		{Role: core.RoleAssistant, Content: "Here are your listings."},
	}}
	server := &fakeToolServer{result: "2 results"}
	repo := newMemRepo()
	a := newTestAgent(ai, server, repo)

	var updates []core.Message
	out, err := a.Run(context.Background(), "s1", "show me condos", func(m core.Message) {
		updates = append(updates, m)
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Here are your listings." {
		t.Errorf("unexpected answer: %q", out)
	}
	if len(server.calls) != 1 || server.calls[0] != "search_properties" {
		t.Errorf("expected one search_properties call, got %v", server.calls)
	}
	if len(updates) != 2 {
		t.Errorf("expected 2 onUpdate callbacks, got %d", len(updates))
	}

	// user, assistant(tool call), tool, assistant(answer)
	msgs, _ := repo.GetMessages(context.Background(), "s1", 10)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 saved messages, got %d", len(msgs))
	}
	if msgs[2].Role != core.RoleTool || msgs[2].ToolCallID != "call_1" {
		t.Errorf("tool result not saved correctly: %+v", msgs[2])
	}
}

func TestAgentRunCapturesPreferences(t *testing.T) {
	ai := &scriptedAI{responses: []core.Message{
		{Role: core.RoleAssistant, Content: "Noted."},
	}}
	a := newTestAgent(ai, &fakeToolServer{}, newMemRepo())

	if _, err := a.Run(context.Background(), "s1", "my budget is 5 million baht near Bangkok", nil); err != nil {
		t.Fatal(err)
	}

	store := a.sessions.Get("s1")
	if store.Count() < 2 {
		t.Errorf("expected budget and location preferences, got %d items", store.Count())
	}

	// The system prompt for the next turn carries what was learned
	if _, err := a.Run(context.Background(), "s1", "thanks", nil); err != nil {
		t.Fatal(err)
	}
	last := ai.seen[len(ai.seen)-1]
	if len(last) == 0 || last[0].Role != core.RoleSystem {
		t.Fatalf("expected system message first, got %+v", last)
	}
	if !strings.Contains(last[0].Content, "budget") {
		t.Errorf("system prompt missing captured preference: %q", last[0].Content)
	}
}
