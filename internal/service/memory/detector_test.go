package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_MultiCategoryMessage(t *testing.T) {
	s := NewStore()
	msg := "My budget is 5 million baht for a condo in Bangkok"

	stored := s.DetectAndStore(msg)
	require.GreaterOrEqual(t, len(stored), 3)

	byCategory := make(map[Category]string)
	for _, it := range stored {
		byCategory[it.Category] = it.Content
	}
	assert.Equal(t, msg, byCategory[CategoryBudget])
	assert.Equal(t, msg, byCategory[CategoryLocation])
	assert.Equal(t, msg, byCategory[CategoryPropertyType])

	// Items actually landed in the store.
	assert.Equal(t, len(stored), s.Count())
}

func TestDetect_FixedCategoryOrder(t *testing.T) {
	d := NewDetector()
	msg := "invest in a condo near bangkok within my budget"

	got := d.Detect(msg)
	require.Len(t, got, 4)
	assert.Equal(t, CategoryBudget, got[0].Category)
	assert.Equal(t, CategoryLocation, got[1].Category)
	assert.Equal(t, CategoryPropertyType, got[2].Category)
	assert.Equal(t, CategoryInvestment, got[3].Category)
}

func TestDetect_PerCategoryKeywords(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name    string
		message string
		want    []Category
	}{
		{"budget via dollar sign", "I can spend $200k", []Category{CategoryBudget}},
		{"budget via afford", "what can I afford?", []Category{CategoryBudget}},
		{"location via district", "somewhere in a quiet district", []Category{CategoryLocation}},
		{"location via close to", "close to a BTS station please", []Category{CategoryLocation}},
		{"property type via villa", "maybe a villa", []Category{CategoryPropertyType}},
		{"investment via rental", "what's the rental demand like?", []Category{CategoryInvestment}},
		{"investment via roi", "show me the ROI numbers", []Category{CategoryInvestment}},
		{"case-insensitive", "BUDGET talk", []Category{CategoryBudget}},
		{"no keywords", "hello there", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.message)
			cats := make([]Category, 0, len(got))
			for _, it := range got {
				cats = append(cats, it.Category)
			}
			if tt.want == nil {
				assert.Empty(t, cats)
				return
			}
			assert.Equal(t, tt.want, cats)
		})
	}
}

// A message hitting several keywords of the SAME category stores one item,
// not one per keyword.
func TestDetect_OneItemPerCategory(t *testing.T) {
	d := NewDetector()
	got := d.Detect("price, cost and budget all at once")
	require.Len(t, got, 1)
	assert.Equal(t, CategoryBudget, got[0].Category)
}
