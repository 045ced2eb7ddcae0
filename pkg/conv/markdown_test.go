package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "bold and italic survive",
			input:    "**bold** and *italic*",
			contains: []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:     "code block keeps language class",
			input:    "```go\nfmt.Println()\n```",
			contains: []string{"<code class=\"language-go\">"},
		},
		{
			name:     "headings are stripped",
			input:    "# Title\n\ntext",
			excludes: []string{"<h1>", "</h1>"},
			contains: []string{"Title", "text"},
		},
		{
			name:     "tables are stripped",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			excludes: []string{"<table>", "<td>"},
		},
		{
			name:     "links keep href only",
			input:    "[site](https://example.com)",
			contains: []string{"href=\"https://example.com\""},
			excludes: []string{"target="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in output, got:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("did not expect %q in output, got:\n%s", bad, got)
				}
			}
		})
	}
}
