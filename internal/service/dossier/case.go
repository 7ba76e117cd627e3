package dossier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"arguminds/internal/config"
	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/export"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// caseService implements the CaseService interface
type caseService struct {
	caseRepo dossierRepo.CaseRepository
	logger   *slog.Logger
}

// NewCaseService creates a new case service
func NewCaseService(
	caseRepo dossierRepo.CaseRepository,
	logger *slog.Logger,
) dossierSvc.CaseService {
	return &caseService{
		caseRepo: caseRepo,
		logger:   logger,
	}
}

// CreateCase creates a new case
func (s *caseService) CreateCase(ctx context.Context, req *dossierSvc.CreateCaseRequest) (*models.Case, error) {
	if req.Status == "" {
		req.Status = export.StatusInProgress
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	now := time.Now()
	c := &models.Case{
		UserID:      req.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: normalizeOptional(req.Description),
		Type:        normalizeOptional(req.Type),
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case created",
		"id", c.ID,
		"title", c.Title,
		"user_id", req.UserID,
	)

	return c, nil
}

// GetCase retrieves a case by ID
func (s *caseService) GetCase(ctx context.Context, id, userID string) (*models.Case, error) {
	return s.caseRepo.GetByID(ctx, id, userID)
}

// ListCases retrieves the user's cases
func (s *caseService) ListCases(ctx context.Context, userID string, filter models.CaseFilter) ([]models.Case, error) {
	if filter.Status != "" && !export.IsStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
	}

	return s.caseRepo.List(ctx, userID, filter)
}

// UpdateCase applies a partial update
func (s *caseService) UpdateCase(ctx context.Context, id, userID string, req *dossierSvc.UpdateCaseRequest) (*models.Case, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	c, err := s.caseRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = strings.TrimSpace(*req.Title)
	}
	// Tri-state: only touch nullable fields present in the request
	if req.Description.Present {
		c.Description = normalizeOptional(req.Description.Value)
	}
	if req.Type.Present {
		c.Type = normalizeOptional(req.Type.Value)
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	c.UpdatedAt = time.Now()

	if err := s.caseRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case updated",
		"id", c.ID,
		"status", c.Status,
		"user_id", userID,
	)

	return c, nil
}

// DeleteCase deletes a case and everything it contains
func (s *caseService) DeleteCase(ctx context.Context, id, userID string) error {
	if err := s.caseRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("case deleted",
		"id", id,
		"user_id", userID,
	)

	return nil
}

func (s *caseService) validateCreateRequest(req *dossierSvc.CreateCaseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxCaseTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Description, validation.RuneLength(0, config.MaxCaseDescriptionLength)),
		validation.Field(&req.Type, validation.RuneLength(0, config.MaxCaseTypeLength)),
		validation.Field(&req.Status, validation.By(validStatus)),
	)
}

func (s *caseService) validateUpdateRequest(req *dossierSvc.UpdateCaseRequest) error {
	// Optional fields are nested structs, so they are validated by value
	return validation.Errors{
		"title": validation.Validate(req.Title,
			validation.NilOrNotEmpty,
			validation.RuneLength(1, config.MaxCaseTitleLength),
			validation.By(notBlank),
		),
		"description": validation.Validate(req.Description.Value, validation.RuneLength(0, config.MaxCaseDescriptionLength)),
		"type":        validation.Validate(req.Type.Value, validation.RuneLength(0, config.MaxCaseTypeLength)),
		"status":      validation.Validate(req.Status, validation.By(validStatus)),
	}.Filter()
}
