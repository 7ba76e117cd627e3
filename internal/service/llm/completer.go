package llm

import (
	"context"
	"fmt"
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"
)

const blockTypeText = "text"

// Completer sends one prompt to a model and returns the text of its answer
type Completer interface {
	Complete(ctx context.Context, model, system, prompt string) (string, error)
}

// ProviderCompleter resolves the provider from the model name and calls it
type ProviderCompleter struct {
	factory *ProviderFactory
}

// NewProviderCompleter creates a completer backed by the provider factory
func NewProviderCompleter(factory *ProviderFactory) *ProviderCompleter {
	return &ProviderCompleter{factory: factory}
}

// Complete runs a single-turn, non-streaming generation.
// The system prompt is sent as the first block of the user message.
func (c *ProviderCompleter) Complete(ctx context.Context, model, system, prompt string) (string, error) {
	info, err := ParseModel(model)
	if err != nil {
		return "", err
	}

	provider, err := c.factory.GetProvider(info.Provider)
	if err != nil {
		return "", err
	}

	if !provider.SupportsModel(info.Model) {
		return "", fmt.Errorf("provider %s does not support model %s", provider.Name().String(), info.Model)
	}

	req := &llmprovider.GenerateRequest{
		Messages: []llmprovider.Message{
			{
				Role: "user",
				Blocks: []*llmprovider.Block{
					{BlockType: blockTypeText, Sequence: 0, TextContent: &system},
					{BlockType: blockTypeText, Sequence: 1, TextContent: &prompt},
				},
			},
		},
		Model: info.Model,
	}

	resp, err := provider.GenerateResponse(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}

	return responseText(resp), nil
}

// responseText concatenates the text blocks of a response
func responseText(resp *llmprovider.GenerateResponse) string {
	var b strings.Builder
	for _, block := range resp.Blocks {
		if block == nil || block.BlockType != blockTypeText || block.TextContent == nil {
			continue
		}
		b.WriteString(*block.TextContent)
	}
	return b.String()
}
