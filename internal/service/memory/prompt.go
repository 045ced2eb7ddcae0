package memory

import (
	"os"
	"strings"

	"github.com/sandevgo/casabot/internal/core"
)

// SysPrompt assembles the system messages for a turn: the base prompt files
// from the runtime directory plus the session's current preference memory.
type SysPrompt struct {
	cfg core.PromptConfig
}

func NewSysPrompt(cfg core.PromptConfig) *SysPrompt {
	return &SysPrompt{cfg: cfg}
}

func (p *SysPrompt) Build(store *Store) []core.Message {
	messages := make([]core.Message, 0)
	readFile := func(path string) string {
		content, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		return string(content)
	}

	if content := readFile(p.cfg.GetSystemPath()); content != "" {
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: content})
	}
	if content := readFile(p.cfg.GetIdentityPath()); content != "" {
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: "YOUR IDENTITY:\n" + content})
	}
	if block := FormatPreferences(store); block != "" {
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: block})
	}
	return messages
}

// FormatPreferences renders the stored items as a prompt block. Empty string
// when there is nothing to tell the model.
func FormatPreferences(store *Store) string {
	if store == nil || store.Count() == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("KNOWN USER PREFERENCES (from this conversation):\n")
	for _, it := range store.Items() {
		sb.WriteString("- [")
		sb.WriteString(string(it.Category))
		sb.WriteString("] ")
		sb.WriteString(it.Content)
		sb.WriteByte('\n')
	}
	return sb.String()
}
