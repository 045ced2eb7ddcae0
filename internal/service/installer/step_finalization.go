package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.EnvVars["CASA_CHAT_CHANNEL"] == "telegram" && state.EnvVars["CASA_TELEGRAM_TOKEN"] != "" {
		state.EnvVars["CASA_ENABLE_TELEGRAM"] = "true"
		state.EnvVars["CASA_ENABLE_CLI"] = "false"
	} else {
		state.EnvVars["CASA_ENABLE_TELEGRAM"] = "false"
		state.EnvVars["CASA_ENABLE_CLI"] = "true"
	}

	if state.EnvVars["CASA_DEBUG"] == "" {
		state.EnvVars["CASA_DEBUG"] = "0"
	}

	// Only used as intermediate state
	delete(state.EnvVars, "CASA_CHAT_CHANNEL")

	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
