package handler

import (
	"log/slog"
	"net/http"

	models "arguminds/internal/domain/models/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/httputil"
)

// CaseHandler handles case HTTP requests
type CaseHandler struct {
	caseService dossierSvc.CaseService
	logger      *slog.Logger
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService dossierSvc.CaseService, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{
		caseService: caseService,
		logger:      logger,
	}
}

// updateCaseBody distinguishes absent from null for the nullable fields
type updateCaseBody struct {
	Title       *string                 `json:"title"`
	Description httputil.OptionalString `json:"description"`
	Type        httputil.OptionalString `json:"type"`
	Status      *string                 `json:"status"`
}

// ListCases retrieves the user's cases
// GET /api/cases?status=&type=&q=
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := models.CaseFilter{
		Status: query.Get("status"),
		Type:   query.Get("type"),
		Query:  query.Get("q"),
	}

	cases, err := h.caseService.ListCases(r.Context(), userID, filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cases)
}

// CreateCase creates a new case
// POST /api/cases
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dossierSvc.CreateCaseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}
	req.UserID = userID

	c, err := h.caseService.CreateCase(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, c)
}

// GetCase retrieves a case by ID
// GET /api/cases/{id}
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	c, err := h.caseService.GetCase(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// UpdateCase applies a partial update
// PATCH /api/cases/{id}
func (h *CaseHandler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	var body updateCaseBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	req := &dossierSvc.UpdateCaseRequest{
		Title:       body.Title,
		Description: dossierSvc.OptionalString{Present: body.Description.Present, Value: body.Description.Value},
		Type:        dossierSvc.OptionalString{Present: body.Type.Present, Value: body.Type.Value},
		Status:      body.Status,
	}

	c, err := h.caseService.UpdateCase(r.Context(), id, userID, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// DeleteCase deletes a case with its arguments, sources and analyses
// DELETE /api/cases/{id}
func (h *CaseHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	if err := h.caseService.DeleteCase(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
