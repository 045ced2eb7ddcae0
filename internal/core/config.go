package core

type PromptConfig interface {
	GetSystemPath() string
	GetIdentityPath() string
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	SetModel(provider, model string) error
	GetOpenAIAPIKey() string
	GetAnthropicAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaBaseURL() string
	GetOllamaAPIKey() string
	GetCustomBaseURL() string
	GetCustomAPIKey() string
}
