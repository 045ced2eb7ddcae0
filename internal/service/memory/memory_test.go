package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_AndQueryAll(t *testing.T) {
	s := NewStore()
	s.Add("Likes pools", CategoryUncategorized)

	got := s.Query("")
	require.Len(t, got, 1)
	assert.Equal(t, "Likes pools", got[0].Content)
	assert.Equal(t, CategoryUncategorized, got[0].Category)
}

func TestAdd_NoDeduplication(t *testing.T) {
	s := NewStore()
	s.Add("Budget is 5M", CategoryBudget)
	s.Add("Budget is 5M", CategoryBudget)

	// Identical content stored twice on purpose; the store never dedupes.
	assert.Equal(t, 2, s.Count())
}

func TestAdd_UnknownCategoryFallsBackToUncategorized(t *testing.T) {
	s := NewStore()
	s.Add("something", Category("no-such-category"))

	got := s.Items()
	require.Len(t, got, 1)
	assert.Equal(t, CategoryUncategorized, got[0].Category)
}

func TestAddConversationContext(t *testing.T) {
	s := NewStore()
	s.AddConversationContext("User asked about condos", "property_search")

	got := s.Items()
	require.Len(t, got, 1)
	assert.Equal(t, CategoryContext, got[0].Category)
	assert.Equal(t, "[property_search] User asked about condos", got[0].Content)

	s.AddConversationContext("no label here", "")
	assert.Equal(t, "no label here", s.Items()[1].Content)
}

func TestQuery_SubstringCaseInsensitive(t *testing.T) {
	s := NewStore()
	s.Add("Prefers Sukhumvit area", CategoryLocation)
	s.Add("Budget around 4 million", CategoryBudget)
	s.Add("Wants a balcony", CategoryUncategorized)

	got := s.Query("SUKHUMVIT")
	require.Len(t, got, 1)
	assert.Equal(t, "Prefers Sukhumvit area", got[0].Content)

	assert.Len(t, s.Query("million"), 1)
	assert.Empty(t, s.Query("pool"))
}

func TestQuery_PreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Add("first fact", CategoryBudget)
	s.Add("second fact", CategoryLocation)
	s.Add("third fact", CategoryBudget)

	got := s.Query("fact")
	require.Len(t, got, 3)
	assert.Equal(t, "first fact", got[0].Content)
	assert.Equal(t, "second fact", got[1].Content)
	assert.Equal(t, "third fact", got[2].Content)
}

func TestClear_IsIdempotent(t *testing.T) {
	s := NewStore()
	s.Add("anything", CategoryBudget)

	s.Clear()
	assert.Empty(t, s.Query(""))
	assert.Zero(t, s.Count())

	// Clearing an empty store is a no-op, not an error.
	s.Clear()
	assert.Zero(t, s.Count())
}

func TestSessions_IsolatesStores(t *testing.T) {
	sessions := NewSessions()

	a := sessions.Get("telegram-1")
	b := sessions.Get("telegram-2")
	a.Add("only in a", CategoryBudget)

	assert.Equal(t, 1, a.Count())
	assert.Zero(t, b.Count())

	// Same ID yields the same store.
	assert.Same(t, a, sessions.Get("telegram-1"))
}
