package command

import (
	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/estate"
	"github.com/sandevgo/casabot/internal/service/memory"
)

func NewCommands(
	cfg core.ProviderConfig,
	state core.GlobalState,
	sessions *memory.Sessions,
	catalog *estate.Catalog,
) []core.Command {
	return []core.Command{
		NewModelCommand(cfg, state),
		NewMemoryCommand(sessions),
		NewPreferencesCommand(sessions),
		NewRememberCommand(sessions),
		NewForgetCommand(sessions),
		NewStatsCommand(catalog),
	}
}
