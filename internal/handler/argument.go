package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	models "arguminds/internal/domain/models/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/httputil"
)

// ArgumentHandler handles argument and graph HTTP requests
type ArgumentHandler struct {
	argumentService dossierSvc.ArgumentService
	logger          *slog.Logger
}

// NewArgumentHandler creates a new argument handler
func NewArgumentHandler(argumentService dossierSvc.ArgumentService, logger *slog.Logger) *ArgumentHandler {
	return &ArgumentHandler{
		argumentService: argumentService,
		logger:          logger,
	}
}

// connectBody is a graph edge drawn from the parent (source) to the child (target)
type connectBody struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// ListArguments retrieves all arguments of a case
// GET /api/cases/{id}/arguments
func (h *ArgumentHandler) ListArguments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	caseID, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	args, err := h.argumentService.ListArguments(r.Context(), userID, caseID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, args)
}

// CreateArgument adds an argument to a case
// POST /api/cases/{id}/arguments
func (h *ArgumentHandler) CreateArgument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	caseID, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	var req dossierSvc.CreateArgumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}
	if !validParentID(req.ParentID) {
		httputil.RespondError(w, http.StatusBadRequest, "parent_id must be an argument ID")
		return
	}
	req.UserID = userID
	req.CaseID = caseID

	arg, err := h.argumentService.CreateArgument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, arg)
}

// GetArgument retrieves one argument
// GET /api/cases/{id}/arguments/{argumentId}
func (h *ArgumentHandler) GetArgument(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}

	arg, err := h.argumentService.GetArgument(r.Context(), userID, caseID, argumentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, arg)
}

// UpdateArgument replaces an argument's title, content, type and parent
// PUT /api/cases/{id}/arguments/{argumentId}
func (h *ArgumentHandler) UpdateArgument(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}

	var req dossierSvc.UpdateArgumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}
	if !validParentID(req.ParentID) {
		httputil.RespondError(w, http.StatusBadRequest, "parent_id must be an argument ID")
		return
	}

	arg, err := h.argumentService.UpdateArgument(r.Context(), userID, caseID, argumentID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, arg)
}

// UpdatePosition stores where the node was dropped on the canvas
// PATCH /api/cases/{id}/arguments/{argumentId}/position
func (h *ArgumentHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}

	var pos models.Position
	if err := httputil.ParseJSON(w, r, &pos); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	if err := h.argumentService.UpdatePosition(r.Context(), userID, caseID, argumentID, pos); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteArgument deletes an argument; its children become roots
// DELETE /api/cases/{id}/arguments/{argumentId}
func (h *ArgumentHandler) DeleteArgument(w http.ResponseWriter, r *http.Request) {
	userID, caseID, argumentID, ok := argumentPath(w, r)
	if !ok {
		return
	}

	if err := h.argumentService.DeleteArgument(r.Context(), userID, caseID, argumentID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Connect makes the edge source the parent of the edge target
// POST /api/cases/{id}/connections
func (h *ArgumentHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	caseID, ok := pathUUID(w, r, "id", "Case")
	if !ok {
		return
	}

	var body connectBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}
	if uuid.Validate(body.SourceID) != nil || uuid.Validate(body.TargetID) != nil {
		httputil.RespondError(w, http.StatusBadRequest, "source_id and target_id must be argument IDs")
		return
	}

	if err := h.argumentService.ConnectArguments(r.Context(), userID, caseID, body.SourceID, body.TargetID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validParentID accepts a missing or blank parent, or a UUID
func validParentID(parentID *string) bool {
	if parentID == nil {
		return true
	}
	id := strings.TrimSpace(*parentID)
	return id == "" || uuid.Validate(id) == nil
}

// argumentPath extracts the user and the {id}/{argumentId} path parameters
func argumentPath(w http.ResponseWriter, r *http.Request) (userID, caseID, argumentID string, ok bool) {
	if userID, ok = requireUserID(w, r); !ok {
		return
	}
	if caseID, ok = pathUUID(w, r, "id", "Case"); !ok {
		return
	}
	argumentID, ok = pathUUID(w, r, "argumentId", "Argument")
	return
}
