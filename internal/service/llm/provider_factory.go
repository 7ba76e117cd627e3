package llm

import (
	"fmt"
	"sync"

	llmprovider "github.com/haowjy/meridian-llm-go"
	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"

	"arguminds/internal/config"
	"arguminds/internal/domain"
)

// Provider names
const (
	ProviderAnthropic = "anthropic"
	ProviderLorem     = "lorem"
)

// ProviderFactory creates LLM provider instances and reuses them across requests
type ProviderFactory struct {
	config    *config.Config
	mu        sync.Mutex
	providers map[string]llmprovider.Provider
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{
		config:    cfg,
		providers: make(map[string]llmprovider.Provider),
	}
}

// GetProvider returns a provider instance for the given provider name
//
// Supported providers:
//   - "anthropic" - Claude models via Anthropic API
//   - "lorem" - Mock provider for local development (no API key required)
func (f *ProviderFactory) GetProvider(providerName string) (llmprovider.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if provider, ok := f.providers[providerName]; ok {
		return provider, nil
	}

	var (
		provider llmprovider.Provider
		err      error
	)
	switch providerName {
	case ProviderAnthropic:
		provider, err = f.createAnthropicProvider()
	case ProviderLorem:
		provider = lorem.NewProvider()
	default:
		return nil, fmt.Errorf("%w: unsupported provider %s", domain.ErrUnavailable, providerName)
	}
	if err != nil {
		return nil, err
	}

	f.providers[providerName] = provider
	return provider, nil
}

// createAnthropicProvider creates an Anthropic provider instance
func (f *ProviderFactory) createAnthropicProvider() (llmprovider.Provider, error) {
	if f.config.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY environment variable not set", domain.ErrUnavailable)
	}

	provider, err := anthropic.NewProvider(f.config.AnthropicAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
	}

	return provider, nil
}
