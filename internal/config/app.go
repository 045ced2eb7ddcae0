package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	casaenv "github.com/sandevgo/casabot/pkg/env"
	"github.com/sandevgo/casabot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"CASA_RUNTIME_PATH" envDefault:".casabot"`

	// Provider selection
	Provider string `env:"CASA_LLM_PROVIDER" envDefault:"openai"`
	Model    string `env:"CASA_MODEL" envDefault:"gpt-4o"`

	// Provider credentials
	OpenAIAPIKey     string `env:"CASA_OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"CASA_ANTHROPIC_API_KEY"`
	OpenRouterAPIKey string `env:"CASA_OPENROUTER_API_KEY"`
	OllamaBaseURL    string `env:"CASA_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey     string `env:"CASA_OLLAMA_API_KEY"`
	CustomBaseURL    string `env:"CASA_CUSTOM_BASE_URL"`
	CustomAPIKey     string `env:"CASA_CUSTOM_API_KEY"`

	// Transport flags
	EnableTelegram bool `env:"CASA_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"CASA_ENABLE_CLI" envDefault:"true"`

	// Context management
	ContextWindowSize  int `env:"CASA_CONTEXT_WINDOW" envDefault:"30"`
	ContextTokenBudget int `env:"CASA_CONTEXT_TOKENS" envDefault:"6000"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	// Resolve relative runtime paths against the home dir so the db,
	// datasets and prompts live where the installer put them.
	c.RuntimePath = GetRuntimePath()
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetSystemPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c AppConfig) GetIdentityPath() string {
	return filepath.Join(c.RuntimePath, "IDENTITY.md")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "casabot.db")
}

func (c AppConfig) GetMCPConfigPath() string {
	return filepath.Join(c.RuntimePath, "mcp_config.json")
}

func (c AppConfig) GetPropertiesPath() string {
	return filepath.Join(c.RuntimePath, "properties.json")
}

func (c AppConfig) GetGroupsPath() string {
	return filepath.Join(c.RuntimePath, "property_groups.json")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetProvider() string         { return c.Provider }
func (c AppConfig) GetModel() string            { return c.Model }
func (c AppConfig) GetOpenAIAPIKey() string     { return c.OpenAIAPIKey }
func (c AppConfig) GetAnthropicAPIKey() string  { return c.AnthropicAPIKey }
func (c AppConfig) GetOpenRouterAPIKey() string { return c.OpenRouterAPIKey }
func (c AppConfig) GetOllamaBaseURL() string    { return c.OllamaBaseURL }
func (c AppConfig) GetOllamaAPIKey() string     { return c.OllamaAPIKey }
func (c AppConfig) GetCustomBaseURL() string    { return c.CustomBaseURL }
func (c AppConfig) GetCustomAPIKey() string     { return c.CustomAPIKey }

// SetModel switches the active provider/model pair and writes the change
// back to the runtime .env so it survives restarts.
func (c *AppConfig) SetModel(provider, model string) error {
	if provider != "" {
		c.Provider = provider
	}
	c.Model = model

	content, err := casaenv.MarshalEnv(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.GetEnvPath(), []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
