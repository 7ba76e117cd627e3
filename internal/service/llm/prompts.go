package llm

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"arguminds/internal/domain/models/dossier"
	"arguminds/internal/export"
)

//go:embed prompts/*.yaml
var promptFiles embed.FS

const contextPlaceholder = "{{context}}"

// PromptCatalog holds the system prompt and one user prompt template per action.
// It is read-only after loading.
type PromptCatalog struct {
	System  string            `yaml:"system"`
	Actions map[string]string `yaml:"actions"`
}

// LoadPromptCatalog loads the embedded analysis prompts
func LoadPromptCatalog() (*PromptCatalog, error) {
	data, err := promptFiles.ReadFile("prompts/analysis.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}
	return ParsePromptCatalog(data)
}

// ParsePromptCatalog decodes a catalogue and checks every action has a template
func ParsePromptCatalog(data []byte) (*PromptCatalog, error) {
	var catalog PromptCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompts: %w", err)
	}

	if strings.TrimSpace(catalog.System) == "" {
		return nil, fmt.Errorf("prompts: missing system prompt")
	}
	for _, action := range dossier.AnalysisActions {
		tmpl, ok := catalog.Actions[action]
		if !ok {
			return nil, fmt.Errorf("prompts: missing template for action %q", action)
		}
		if !strings.Contains(tmpl, contextPlaceholder) {
			return nil, fmt.Errorf("prompts: template %q has no %s placeholder", action, contextPlaceholder)
		}
	}

	return &catalog, nil
}

// Render fills the action's template with the argument context
func (c *PromptCatalog) Render(action, context string) (string, error) {
	tmpl, ok := c.Actions[action]
	if !ok {
		return "", fmt.Errorf("unknown action: %s", action)
	}
	return strings.ReplaceAll(tmpl, contextPlaceholder, context), nil
}

// ArgumentContext describes the argument sent to the model
type ArgumentContext struct {
	Argument *dossier.Argument
	Parent   *dossier.Argument // nil for a root argument
}

// String renders the context block embedded in every prompt
func (c ArgumentContext) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Titre : %s\nType : %s\nContenu : %s",
		c.Argument.Title,
		export.TypeLabel(c.Argument.Type),
		c.Argument.Content,
	)

	if len(c.Argument.Sources) > 0 {
		refs := make([]string, len(c.Argument.Sources))
		for i, src := range c.Argument.Sources {
			refs[i] = src.Title
			if src.URL != nil && *src.URL != "" {
				refs[i] += " (" + *src.URL + ")"
			}
		}
		b.WriteString("\nSources liées : " + strings.Join(refs, ", "))
	}

	if c.Parent != nil {
		fmt.Fprintf(&b, "\nArgument parent : %s — %s", c.Parent.Title, c.Parent.Content)
	}

	return b.String()
}
