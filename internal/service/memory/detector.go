package memory

import "strings"

// Detector finds preference categories in free text by keyword co-occurrence.
// This is heuristic and intentionally imprecise: no NLP, false positives are
// expected and acceptable. The table is iterated in declaration order so
// multi-category detection is reproducible.
type Detector struct {
	rules []rule
}

type rule struct {
	category Category
	keywords []string
}

func NewDetector() *Detector {
	return &Detector{
		rules: []rule{
			{CategoryBudget, []string{"budget", "price", "cost", "afford", "$", "baht", "million"}},
			{CategoryLocation, []string{"bangkok", "location", "area", "district", "near", "close to"}},
			{CategoryPropertyType, []string{"condo", "house", "apartment", "villa", "townhouse", "commercial"}},
			{CategoryInvestment, []string{"invest", "investment", "roi", "return", "yield", "rental"}},
		},
	}
}

// Detect returns one item per category whose keyword set has at least one
// case-insensitive substring match in message. Each item carries the
// original message as content.
func (d *Detector) Detect(message string) []Item {
	lowered := strings.ToLower(message)

	var out []Item
	for _, r := range d.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				out = append(out, Item{Content: message, Category: r.category})
				break
			}
		}
	}
	return out
}
