// Package memory keeps short textual facts about the current user for one
// conversation session. The store is ordered and append-only: items are never
// mutated, only added or wiped wholesale by Clear. Nothing is persisted across
// process restarts.
package memory

import (
	"fmt"
	"strings"
)

// Category labels a stored preference.
type Category string

const (
	CategoryBudget        Category = "budget"
	CategoryLocation      Category = "location"
	CategoryPropertyType  Category = "property-type"
	CategoryInvestment    Category = "investment"
	CategoryContext       Category = "conversation-context"
	CategoryUncategorized Category = "uncategorized"
)

// ParseCategory maps free-form input to a known Category. Anything
// unrecognized lands in CategoryUncategorized.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryBudget, CategoryLocation, CategoryPropertyType,
		CategoryInvestment, CategoryContext, CategoryUncategorized:
		return Category(strings.ToLower(strings.TrimSpace(s)))
	}
	return CategoryUncategorized
}

// Item is one stored fact. Position in the store reflects insertion order.
type Item struct {
	Content  string   `json:"content"`
	Category Category `json:"category"`
}

// Store is the per-session preference memory. It holds no locks: there is
// exactly one logical caller per session (see Sessions for isolation).
type Store struct {
	items    []Item
	detector *Detector
}

func NewStore() *Store {
	return &Store{detector: NewDetector()}
}

// Add appends an item. Repeated identical content produces repeated items;
// deduplication is deliberately absent.
func (s *Store) Add(text string, category Category) {
	s.items = append(s.items, Item{Content: text, Category: ParseCategory(string(category))})
}

// AddConversationContext stores text under the conversation-context category
// with the label folded into the content.
func (s *Store) AddConversationContext(text, label string) {
	content := text
	if label != "" {
		content = fmt.Sprintf("[%s] %s", label, text)
	}
	s.items = append(s.items, Item{Content: content, Category: CategoryContext})
}

// DetectAndStore scans message against the keyword table and appends one item
// per matched category, each carrying the original message as content.
// Returns the items that were stored, possibly none.
func (s *Store) DetectAndStore(message string) []Item {
	detected := s.detector.Detect(message)
	s.items = append(s.items, detected...)
	return detected
}

// Query returns the items whose content contains substring,
// case-insensitively, in insertion order. An empty substring matches
// everything.
func (s *Store) Query(substring string) []Item {
	needle := strings.ToLower(substring)
	out := make([]Item, 0)
	for _, it := range s.items {
		if needle == "" || strings.Contains(strings.ToLower(it.Content), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Items returns all stored items in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count reports how many items are stored.
func (s *Store) Count() int {
	return len(s.items)
}

// Clear wipes the store. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.items = nil
}
