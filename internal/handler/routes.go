package handler

import "net/http"

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Health   *HealthHandler
	Cases    *CaseHandler
	Args     *ArgumentHandler
	Sources  *SourceHandler
	Export   *ExportHandler
	Analysis *AnalysisHandler
	Profile  *ProfileHandler
	Models   *ModelsHandler
}

// RegisterRoutes mounts the API on mux (Go 1.22+ method and wildcard patterns)
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	// Health check
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	// Case routes
	mux.HandleFunc("GET /api/cases", h.Cases.ListCases)
	mux.HandleFunc("POST /api/cases", h.Cases.CreateCase)
	mux.HandleFunc("GET /api/cases/{id}", h.Cases.GetCase)
	mux.HandleFunc("PATCH /api/cases/{id}", h.Cases.UpdateCase)
	mux.HandleFunc("DELETE /api/cases/{id}", h.Cases.DeleteCase)

	// Argument routes
	mux.HandleFunc("GET /api/cases/{id}/arguments", h.Args.ListArguments)
	mux.HandleFunc("POST /api/cases/{id}/arguments", h.Args.CreateArgument)
	mux.HandleFunc("GET /api/cases/{id}/arguments/{argumentId}", h.Args.GetArgument)
	mux.HandleFunc("PUT /api/cases/{id}/arguments/{argumentId}", h.Args.UpdateArgument)
	mux.HandleFunc("DELETE /api/cases/{id}/arguments/{argumentId}", h.Args.DeleteArgument)
	mux.HandleFunc("PATCH /api/cases/{id}/arguments/{argumentId}/position", h.Args.UpdatePosition)
	mux.HandleFunc("POST /api/cases/{id}/connections", h.Args.Connect)

	// Source routes
	mux.HandleFunc("GET /api/cases/{id}/sources", h.Sources.ListSources)
	mux.HandleFunc("POST /api/cases/{id}/sources", h.Sources.CreateSource)
	mux.HandleFunc("PUT /api/cases/{id}/sources/{sourceId}", h.Sources.UpdateSource)
	mux.HandleFunc("DELETE /api/cases/{id}/sources/{sourceId}", h.Sources.DeleteSource)
	mux.HandleFunc("GET /api/cases/{id}/arguments/{argumentId}/sources", h.Sources.ListArgumentSources)
	mux.HandleFunc("PUT /api/cases/{id}/arguments/{argumentId}/sources/{sourceId}", h.Sources.LinkSource)
	mux.HandleFunc("DELETE /api/cases/{id}/arguments/{argumentId}/sources/{sourceId}", h.Sources.UnlinkSource)

	// Export routes
	mux.HandleFunc("GET /api/export/formats", h.Export.ListFormats)
	mux.HandleFunc("GET /api/cases/{id}/export/{format}", h.Export.Export)
	mux.HandleFunc("POST /api/cases/{id}/export/{format}", h.Export.ExportWithGraph)

	// AI routes
	mux.HandleFunc("GET /api/ai/models", h.Models.GetModels)
	mux.HandleFunc("POST /api/ai/{action}", h.Analysis.Analyze)
	mux.HandleFunc("GET /api/cases/{id}/arguments/{argumentId}/analyses", h.Analysis.History)
	mux.HandleFunc("DELETE /api/cases/{id}/arguments/{argumentId}/analyses", h.Analysis.ClearHistory)
	mux.HandleFunc("DELETE /api/cases/{id}/arguments/{argumentId}/analyses/{analysisId}", h.Analysis.DeleteAnalysis)

	// Profile routes
	mux.HandleFunc("GET /api/profile", h.Profile.GetProfile)
	mux.HandleFunc("PATCH /api/profile", h.Profile.UpdateProfile)
	mux.HandleFunc("GET /api/case-types", h.Profile.CaseTypes)
}
