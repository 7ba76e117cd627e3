package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/httputil"
)

// AnalysisHandler handles AI analysis requests
type AnalysisHandler struct {
	analysisService dossierSvc.AnalysisService
	logger          *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService dossierSvc.AnalysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// Analyze runs an AI action (analyze, suggest, reformulate) on an argument
// POST /api/ai/{action}
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dossierSvc.AnalyzeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}
	req.UserID = userID
	req.Action = r.PathValue("action")

	if uuid.Validate(req.CaseID) != nil || uuid.Validate(req.ArgumentID) != nil {
		httputil.RespondError(w, http.StatusBadRequest, "case_id and argument_id must be valid IDs")
		return
	}

	analysis, err := h.analysisService.Analyze(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, analysis)
}

// History lists the latest analyses of an argument
// GET /api/cases/{id}/arguments/{argumentId}/analyses
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}

	analyses, err := h.analysisService.History(r.Context(), userID, caseID, argumentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, analyses)
}

// DeleteAnalysis deletes one analysis
// DELETE /api/cases/{id}/arguments/{argumentId}/analyses/{analysisId}
func (h *AnalysisHandler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}
	analysisID, ok := pathUUID(w, r, "analysisId", "Analysis")
	if !ok {
		return
	}

	if err := h.analysisService.DeleteAnalysis(r.Context(), userID, caseID, argumentID, analysisID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory deletes every analysis of an argument
// DELETE /api/cases/{id}/arguments/{argumentId}/analyses
func (h *AnalysisHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}

	if err := h.analysisService.ClearHistory(r.Context(), userID, caseID, argumentID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
