package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/casabot/internal/core"
)

// DynamicProvider wraps the configured provider and lets the running bot
// swap model or provider without a restart.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Value
	mu      sync.RWMutex
}

func NewDynamicProvider(ctx context.Context, config core.ProviderConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config: config,
	}

	provider, err := NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(&provider)
	return d, nil
}

func (d *DynamicProvider) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	provider := *d.current.Load().(*core.AIProvider)
	return provider.Chat(ctx, history, tools)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	provider := *d.current.Load().(*core.AIProvider)
	lister, ok := provider.(core.ModelLister)
	if !ok {
		return nil, fmt.Errorf("provider %s does not list models", d.GetProvider())
	}
	return lister.Models(ctx)
}

func (d *DynamicProvider) GetProvider() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config.GetProvider()
}

func (d *DynamicProvider) GetModel() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config.GetModel()
}

// SetModel accepts either "model" or "provider/model". The config change is
// persisted before the running provider is swapped.
func (d *DynamicProvider) SetModel(ctx context.Context, spec string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var provider, model string
	if before, after, found := strings.Cut(spec, "/"); found && isKnownProvider(before) {
		provider, model = before, after
	} else {
		model = spec
	}
	if model == "" {
		return fmt.Errorf("empty model name")
	}

	if err := d.config.SetModel(provider, model); err != nil {
		return err
	}

	newProvider, err := NewProvider(ctx, d.config)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	d.current.Store(&newProvider)
	return nil
}

func isKnownProvider(name string) bool {
	switch name {
	case "openai", "anthropic", "openrouter", "ollama", "custom":
		return true
	}
	return false
}
