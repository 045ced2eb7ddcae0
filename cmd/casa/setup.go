package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/casabot/internal/config"
	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/estate"
	"github.com/sandevgo/casabot/internal/providers/llm"
	"github.com/sandevgo/casabot/internal/providers/mcp"
	"github.com/sandevgo/casabot/internal/service/agent"
	"github.com/sandevgo/casabot/internal/service/command"
	"github.com/sandevgo/casabot/internal/service/memory"
	"github.com/sandevgo/casabot/internal/service/state"
	"github.com/sandevgo/casabot/internal/storage/dataset"
	"github.com/sandevgo/casabot/internal/storage/sqlite"
	"github.com/sandevgo/casabot/internal/transport/cli"
	"github.com/sandevgo/casabot/internal/transport/telegram"
	"github.com/sandevgo/casabot/pkg/log"
	"github.com/sandevgo/casabot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Property catalog
	catalog, err := initCatalog(appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load property catalog")
	}

	// 3. Conversation storage
	db, messagesRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 4. AI Provider (hot-swappable via /model)
	aiProvider, err := llm.NewDynamicProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 5. MCP & native tools
	mcpManager, err := initMCP(ctx, appCfg, catalog)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize MCP manager")
	}
	services = append(services, mcpManager)

	// 6. Session memory and prompt assembly
	sessions := memory.NewSessions()
	sysPrompt := memory.NewSysPrompt(appCfg)

	// 7. Agent
	ag := agent.NewAgent(
		agent.Config{
			ContextWindowSize:  appCfg.ContextWindowSize,
			ContextTokenBudget: appCfg.ContextTokenBudget,
		},
		aiProvider,
		mcpManager,
		messagesRepo,
		sessions,
		sysPrompt,
		memory.TiktokenTokenizer{},
	)

	// 8. Slash commands
	globalState := state.NewGlobalState(aiProvider)
	router := command.New(command.NewCommands(appCfg, globalState, sessions, catalog))

	// 9. Transports
	transports, err := initTransports(ctx, appCfg, ag, router)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initCatalog(cfg *config.AppConfig) (*estate.Catalog, error) {
	properties, groups, err := dataset.Load(cfg.GetPropertiesPath(), cfg.GetGroupsPath())
	if err != nil {
		return nil, err
	}
	return estate.NewCatalog(properties, groups), nil
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, *sqlite.MessagesRepo, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewMessagesRepo(db), nil
}

func initMCP(ctx context.Context, cfg *config.AppConfig, catalog *estate.Catalog) (*mcp.Manager, error) {
	mgr, err := mcp.NewManager(ctx, cfg.GetMCPConfigPath())
	if err != nil {
		return nil, err
	}

	handlers, defs := mcp.RegisterNativeTools(catalog)
	for _, def := range defs {
		mgr.RegisterNativeTool(def.Function.Name, def.Function.Description, def.Function.Parameters, handlers[def.Function.Name])
	}

	return mgr, nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, ag *agent.Agent, router core.CmdRouter) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, ag, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(ag, router, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
