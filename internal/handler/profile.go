package handler

import (
	"log/slog"
	"net/http"

	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/httputil"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	service dossierSvc.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service dossierSvc.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// GetProfile retrieves the caller's profile
// GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	uuid, err := parseUUID(userID)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), uuid)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile updates the caller's name and/or role
// PATCH /api/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	uuid, err := parseUUID(userID)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req dossierSvc.UpdateProfileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondBodyError(w, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), uuid, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// CaseTypes lists the case types offered to the caller's role
// GET /api/case-types
func (h *ProfileHandler) CaseTypes(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	uuid, err := parseUUID(userID)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	types, err := h.service.CaseTypes(r.Context(), uuid)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]string{"case_types": types})
}
