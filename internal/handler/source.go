package handler

import (
	"log/slog"
	"net/http"

	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/httputil"
)

// SourceHandler handles source HTTP requests
type SourceHandler struct {
	sourceService dossierSvc.SourceService
	logger        *slog.Logger
}

// NewSourceHandler creates a new source handler
func NewSourceHandler(sourceService dossierSvc.SourceService, logger *slog.Logger) *SourceHandler {
	return &SourceHandler{
		sourceService: sourceService,
		logger:        logger,
	}
}

// ListSources retrieves the sources of a case
// GET /api/cases/{id}/sources
func (h *SourceHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	caseID, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	sources, err := h.sourceService.ListSources(r.Context(), userID, caseID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sources)
}

// CreateSource adds a source to a case
// POST /api/cases/{id}/sources
func (h *SourceHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	caseID, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	var req dossierSvc.SourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	src, err := h.sourceService.CreateSource(r.Context(), userID, caseID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, src)
}

// UpdateSource replaces a source
// PUT /api/cases/{id}/sources/{sourceId}
func (h *SourceHandler) UpdateSource(w http.ResponseWriter, r *http.Request) {
	userID, caseID, sourceID, ok := sourcePath(w, r)
	if !ok {
		return
	}

	var req dossierSvc.SourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	src, err := h.sourceService.UpdateSource(r.Context(), userID, caseID, sourceID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, src)
}

// DeleteSource deletes a source
// DELETE /api/cases/{id}/sources/{sourceId}
func (h *SourceHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	userID, caseID, sourceID, ok := sourcePath(w, r)
	if !ok {
		return
	}

	if err := h.sourceService.DeleteSource(r.Context(), userID, caseID, sourceID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListArgumentSources retrieves the sources linked to an argument
// GET /api/cases/{id}/arguments/{argumentId}/sources
func (h *SourceHandler) ListArgumentSources(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}

	sources, err := h.sourceService.ListArgumentSources(r.Context(), userID, caseID, argumentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sources)
}

// LinkSource attaches a source to an argument
// PUT /api/cases/{id}/arguments/{argumentId}/sources/{sourceId}
func (h *SourceHandler) LinkSource(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}
	sourceID, ok := pathUUID(w, r, "sourceId", "Source")
	if !ok {
		return
	}

	if err := h.sourceService.LinkSource(r.Context(), userID, caseID, sourceID, argumentID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkSource detaches a source from an argument
// DELETE /api/cases/{id}/arguments/{argumentId}/sources/{sourceId}
func (h *SourceHandler) UnlinkSource(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}
	sourceID, ok := pathUUID(w, r, "sourceId", "Source")
	if !ok {
		return
	}

	if err := h.sourceService.UnlinkSource(r.Context(), userID, caseID, sourceID, argumentID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sourcePath(w http.ResponseWriter, r *http.Request) (userID, caseID, sourceID string, ok bool) {
	if userID, ok = requireUserID(w, r); !ok {
		return
	}
	if caseID, ok = pathUUID(w, r, "id", "Case"); !ok {
		return
	}
	sourceID, ok = pathUUID(w, r, "sourceId", "Source")
	return
}
