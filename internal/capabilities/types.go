package capabilities

import "gopkg.in/yaml.v3"

// PricingTier represents a pricing tier based on context window usage
type PricingTier struct {
	Threshold   *int               `yaml:"threshold" json:"threshold"`       // null = unlimited
	InputPrice  map[string]float64 `yaml:"input_price" json:"input_price"`   // modality -> price per million tokens
	OutputPrice map[string]float64 `yaml:"output_price" json:"output_price"` // modality -> price per million tokens
}

// ModelCapabilities describes one model usable for argument analysis
type ModelCapabilities struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// Limits
	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`

	PricingTiers []PricingTier `yaml:"pricing_tiers" json:"pricing_tiers"`
}

// ProviderCapabilities represents all models for a provider
type ProviderCapabilities struct {
	Provider string              `yaml:"provider" json:"provider"`
	Models   []ModelCapabilities `yaml:"-" json:"models"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML keeps the models in file order, which a plain map decode would lose
func (p *ProviderCapabilities) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Provider string                       `yaml:"provider"`
		Models   map[string]ModelCapabilities `yaml:"models"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	p.Provider = raw.Provider

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "models" {
			continue
		}
		// Mapping content alternates key, value
		modelsNode := node.Content[i+1]
		for j := 0; j+1 < len(modelsNode.Content); j += 2 {
			id := modelsNode.Content[j].Value
			if model, ok := raw.Models[id]; ok {
				model.ID = id
				p.Models = append(p.Models, model)
			}
		}
		break
	}

	return nil
}
