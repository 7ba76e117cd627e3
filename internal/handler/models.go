package handler

import (
	"log/slog"
	"net/http"

	"arguminds/internal/capabilities"
	"arguminds/internal/config"
	"arguminds/internal/httputil"
)

// ModelsHandler lists the models available for AI analysis
type ModelsHandler struct {
	config   *config.Config
	logger   *slog.Logger
	registry *capabilities.Registry
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(cfg *config.Config, logger *slog.Logger, registry *capabilities.Registry) *ModelsHandler {
	return &ModelsHandler{
		config:   cfg,
		logger:   logger,
		registry: registry,
	}
}

// modelsResponse is the body of GET /api/ai/models
type modelsResponse struct {
	DefaultModel string                              `json:"default_model"`
	Providers    []capabilities.ProviderCapabilities `json:"providers"`
}

// GetModels returns the models of every usable provider.
// Anthropic is listed only when an API key is configured; lorem needs none.
// GET /api/ai/models
func (h *ModelsHandler) GetModels(w http.ResponseWriter, r *http.Request) {
	providers := make([]capabilities.ProviderCapabilities, 0, 2)
	for _, p := range h.registry.Catalog() {
		if p.Provider == "anthropic" && h.config.AnthropicAPIKey == "" {
			continue
		}
		providers = append(providers, p)
	}

	httputil.RespondJSON(w, http.StatusOK, modelsResponse{
		DefaultModel: h.config.DefaultModel,
		Providers:    providers,
	})
}
