package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/casabot/internal/core"
)

func newTestRepo(t *testing.T) *MessagesRepo {
	t.Helper()
	ctx := context.Background()

	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "casabot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMessagesRepo(db)
}

func TestMessagesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	msgs := []core.Message{
		{Role: core.RoleUser, Content: "show me condos in Bangkok"},
		{Role: core.RoleAssistant, Content: "", ToolCalls: []core.ToolCall{{
			ID:   "call_1",
			Type: "function",
			Function: core.FunctionCall{
				Name:      "search_properties",
				Arguments: `{"min_bedrooms": 2}`,
			},
		}}},
		{Role: core.RoleTool, Content: "2 results", ToolCallID: "call_1"},
		{Role: core.RoleAssistant, Content: "I found two listings."},
	}
	for _, m := range msgs {
		require.NoError(t, repo.AddMessage(ctx, "cli-local", m))
	}

	got, err := repo.GetMessages(ctx, "cli-local", 10)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Chronological order, oldest first
	assert.Equal(t, core.RoleUser, got[0].Role)
	assert.Equal(t, "show me condos in Bangkok", got[0].Content)

	require.Len(t, got[1].ToolCalls, 1)
	assert.Equal(t, "search_properties", got[1].ToolCalls[0].Function.Name)
	assert.Equal(t, "call_1", got[2].ToolCallID)
	assert.Equal(t, "I found two listings.", got[3].Content)
}

func TestGetMessagesLimitKeepsNewest(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, repo.AddMessage(ctx, "s", core.Message{Role: core.RoleUser, Content: content}))
	}

	got, err := repo.GetMessages(ctx, "s", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Content)
	assert.Equal(t, "three", got[1].Content)
}

func TestMessagesSessionIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.AddMessage(ctx, "a", core.Message{Role: core.RoleUser, Content: "from a"}))
	require.NoError(t, repo.AddMessage(ctx, "b", core.Message{Role: core.RoleUser, Content: "from b"}))

	got, err := repo.GetMessages(ctx, "a", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "from a", got[0].Content)
}
