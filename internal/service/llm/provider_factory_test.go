package llm

import (
	"errors"
	"testing"

	"arguminds/internal/config"
	"arguminds/internal/domain"
)

func TestProviderFactory_MissingAPIKey(t *testing.T) {
	f := NewProviderFactory(&config.Config{})

	_, err := f.GetProvider(ProviderAnthropic)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("GetProvider(anthropic) error = %v, want ErrUnavailable", err)
	}
}

func TestProviderFactory_UnknownProvider(t *testing.T) {
	f := NewProviderFactory(&config.Config{})

	_, err := f.GetProvider("openai")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("GetProvider(openai) error = %v, want ErrUnavailable", err)
	}
}

func TestProviderFactory_ReusesProviders(t *testing.T) {
	f := NewProviderFactory(&config.Config{})

	first, err := f.GetProvider(ProviderLorem)
	if err != nil {
		t.Fatalf("GetProvider(lorem) error: %v", err)
	}
	second, err := f.GetProvider(ProviderLorem)
	if err != nil {
		t.Fatalf("GetProvider(lorem) error: %v", err)
	}
	if first != second {
		t.Error("expected the cached provider instance")
	}
}
