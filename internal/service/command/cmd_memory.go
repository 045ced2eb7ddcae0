package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/casabot/internal/service/memory"
)

// MemoryCommand dumps everything remembered for this session, grouped by
// category.
type MemoryCommand struct {
	sessions  *memory.Sessions
	formatter *ResponseFormatter
}

func NewMemoryCommand(sessions *memory.Sessions) *MemoryCommand {
	return &MemoryCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoryCommand) Name() string {
	return "memory"
}

func (c *MemoryCommand) Description() string {
	return "Show everything remembered in this session"
}

func (c *MemoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	store := c.sessions.Get(sessionID)
	items := store.Items()
	if len(items) == 0 {
		return c.formatter.Info("Memory is empty"), nil
	}

	grouped := make(map[memory.Category][]string)
	var order []memory.Category
	for _, it := range items {
		if _, seen := grouped[it.Category]; !seen {
			order = append(order, it.Category)
		}
		grouped[it.Category] = append(grouped[it.Category], it.Content)
	}

	sections := []string{c.formatter.Info(fmt.Sprintf("Memory (%d items)", len(items)))}
	for _, cat := range order {
		sections = append(sections, c.formatter.Section("📌", string(cat), c.formatter.List(grouped[cat])))
	}
	return c.formatter.Combine(sections...), nil
}

// PreferencesCommand shows only the items the keyword detector classified
// as preferences.
type PreferencesCommand struct {
	sessions  *memory.Sessions
	formatter *ResponseFormatter
}

func NewPreferencesCommand(sessions *memory.Sessions) *PreferencesCommand {
	return &PreferencesCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *PreferencesCommand) Name() string {
	return "preferences"
}

func (c *PreferencesCommand) Description() string {
	return "Show detected user preferences"
}

func (c *PreferencesCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	store := c.sessions.Get(sessionID)

	var lines []string
	for _, it := range store.Items() {
		switch it.Category {
		case memory.CategoryBudget, memory.CategoryLocation, memory.CategoryPropertyType, memory.CategoryInvestment:
			lines = append(lines, fmt.Sprintf("[%s] %s", it.Category, it.Content))
		}
	}
	if len(lines) == 0 {
		return c.formatter.Info("No preferences detected yet"), nil
	}

	return c.formatter.Combine(
		c.formatter.Info("Detected Preferences"),
		c.formatter.List(lines),
	), nil
}

// RememberCommand stores an explicit note under a category.
type RememberCommand struct {
	sessions  *memory.Sessions
	formatter *ResponseFormatter
}

func NewRememberCommand(sessions *memory.Sessions) *RememberCommand {
	return &RememberCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *RememberCommand) Name() string {
	return "remember"
}

func (c *RememberCommand) Description() string {
	return "Remember a note: /remember <category> <text>"
}

func (c *RememberCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) < 2 {
		return c.formatter.Combine(
			c.formatter.Usage("/remember <category> <text>"),
			c.formatter.Examples([]string{
				"/remember budget up to 6M baht",
				"/remember location near Thonglor BTS",
			}),
		), nil
	}

	category := memory.ParseCategory(args[0])
	text := strings.Join(args[1:], " ")

	store := c.sessions.Get(sessionID)
	store.Add(text, category)

	return c.formatter.Success(fmt.Sprintf("Remembered under `%s`", category)), nil
}

// ForgetCommand wipes the session memory.
type ForgetCommand struct {
	sessions  *memory.Sessions
	formatter *ResponseFormatter
}

func NewForgetCommand(sessions *memory.Sessions) *ForgetCommand {
	return &ForgetCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ForgetCommand) Name() string {
	return "forget"
}

func (c *ForgetCommand) Description() string {
	return "Clear everything remembered in this session"
}

func (c *ForgetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	store := c.sessions.Get(sessionID)
	count := store.Count()
	store.Clear()

	return c.formatter.Success(fmt.Sprintf("Forgot %d item(s)", count)), nil
}
