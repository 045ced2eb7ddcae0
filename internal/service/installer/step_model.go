package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/providers/llm"
)

// envConfig is a read-only ProviderConfig view over the collected env vars,
// just enough to build a provider for the model listing.
type envConfig map[string]string

func (c envConfig) GetProvider() string                   { return c["CASA_LLM_PROVIDER"] }
func (c envConfig) GetModel() string                      { return c["CASA_MODEL"] }
func (c envConfig) SetModel(provider, model string) error { return nil }
func (c envConfig) GetOpenAIAPIKey() string               { return c["CASA_OPENAI_API_KEY"] }
func (c envConfig) GetAnthropicAPIKey() string            { return c["CASA_ANTHROPIC_API_KEY"] }
func (c envConfig) GetOpenRouterAPIKey() string           { return c["CASA_OPENROUTER_API_KEY"] }
func (c envConfig) GetOllamaBaseURL() string              { return c["CASA_OLLAMA_BASE_URL"] }
func (c envConfig) GetOllamaAPIKey() string               { return c["CASA_OLLAMA_API_KEY"] }
func (c envConfig) GetCustomBaseURL() string              { return c["CASA_CUSTOM_BASE_URL"] }
func (c envConfig) GetCustomAPIKey() string               { return c["CASA_CUSTOM_API_KEY"] }

// ModelStep lists the provider's models and stores the chosen one
type ModelStep struct {
	list     list.Model
	loading  bool
	fetching bool // Ensures we only trigger the API call once
	err      error
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select AI Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loading && !s.fetching {
		s.fetching = true
		cfg := envConfig(state.EnvVars)

		return s, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			provider, err := llm.NewProvider(ctx, cfg)
			if err != nil {
				return errMsg(err)
			}
			lister, ok := provider.(core.ModelLister)
			if !ok {
				return errMsg(fmt.Errorf("provider %s cannot list models", cfg.GetProvider()))
			}

			models, err := lister.Models(ctx)
			if err != nil {
				return errMsg(err)
			}

			var items []list.Item
			for _, mod := range models {
				desc := fmt.Sprintf("ID: %s", mod.ID)
				if mod.ContextLength > 0 {
					desc = fmt.Sprintf("ID: %s | Context: %d", mod.ID, mod.ContextLength)
				}
				items = append(items, item{
					id:    mod.ID,
					title: mod.Name,
					desc:  desc,
				})
			}
			return modelsMsg(items)
		}
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil

	case tea.KeyMsg:
		// On error, Enter retries the fetch
		if s.err != nil {
			if msg.String() == "enter" {
				s.err = nil
				s.loading = true
				s.fetching = false
				return s, nil
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars["CASA_MODEL"] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and internet connection.\n\n(press enter to retry, ctrl+c to quit)\n"
	}
	if s.loading {
		return fmt.Sprintf("Fetching models from %s...\n", state.EnvVars["CASA_LLM_PROVIDER"])
	}
	return s.list.View()
}
