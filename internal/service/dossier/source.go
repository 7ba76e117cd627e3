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
	"arguminds/internal/domain/repositories"
	dossierRepo "arguminds/internal/domain/repositories/dossier"
	"arguminds/internal/domain/services"
	dossierSvc "arguminds/internal/domain/services/dossier"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// sourceService implements the SourceService interface
type sourceService struct {
	sourceRepo dossierRepo.SourceRepository
	caseRepo   dossierRepo.CaseRepository
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewSourceService creates a new source service
func NewSourceService(
	sourceRepo dossierRepo.SourceRepository,
	caseRepo dossierRepo.CaseRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) dossierSvc.SourceService {
	return &sourceService{
		sourceRepo: sourceRepo,
		caseRepo:   caseRepo,
		txManager:  txManager,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateSource adds a source to a case
func (s *sourceService) CreateSource(ctx context.Context, userID, caseID string, req *dossierSvc.SourceRequest) (*models.Source, error) {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return nil, err
	}

	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	now := time.Now()
	src := &models.Source{
		CaseID:    caseID,
		Title:     strings.TrimSpace(req.Title),
		URL:       normalizeOptional(req.URL),
		Content:   normalizeOptional(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.sourceRepo.Create(txCtx, src); err != nil {
			return err
		}
		return s.caseRepo.Touch(txCtx, caseID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("source created",
		"id", src.ID,
		"case_id", caseID,
		"user_id", userID,
	)

	return src, nil
}

// ListSources returns the case's sources newest first
func (s *sourceService) ListSources(ctx context.Context, userID, caseID string) ([]models.Source, error) {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return nil, err
	}

	return s.sourceRepo.ListByCase(ctx, caseID)
}

// ListArgumentSources returns the sources linked to one argument
func (s *sourceService) ListArgumentSources(ctx context.Context, userID, caseID, argumentID string) ([]models.Source, error) {
	if err := s.authorizer.CanAccessArgument(ctx, userID, caseID, argumentID); err != nil {
		return nil, err
	}

	return s.sourceRepo.ListByArgument(ctx, argumentID, caseID)
}

// UpdateSource replaces title, url and content
func (s *sourceService) UpdateSource(ctx context.Context, userID, caseID, id string, req *dossierSvc.SourceRequest) (*models.Source, error) {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return nil, err
	}

	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	src, err := s.sourceRepo.GetByID(ctx, id, caseID)
	if err != nil {
		return nil, err
	}

	src.Title = strings.TrimSpace(req.Title)
	src.URL = normalizeOptional(req.URL)
	src.Content = normalizeOptional(req.Content)
	src.UpdatedAt = time.Now()

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.sourceRepo.Update(txCtx, src); err != nil {
			return err
		}
		return s.caseRepo.Touch(txCtx, caseID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("source updated",
		"id", id,
		"case_id", caseID,
		"user_id", userID,
	)

	return src, nil
}

// DeleteSource removes a source and its links to arguments
func (s *sourceService) DeleteSource(ctx context.Context, userID, caseID, id string) error {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.sourceRepo.Delete(txCtx, id, caseID); err != nil {
			return err
		}
		return s.caseRepo.Touch(txCtx, caseID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("source deleted",
		"id", id,
		"case_id", caseID,
		"user_id", userID,
	)

	return nil
}

// LinkSource attaches a source to an argument of the same case
func (s *sourceService) LinkSource(ctx context.Context, userID, caseID, sourceID, argumentID string) error {
	if err := s.checkPair(ctx, userID, caseID, sourceID, argumentID); err != nil {
		return err
	}

	if err := s.sourceRepo.Link(ctx, sourceID, argumentID); err != nil {
		return err
	}

	s.logger.Info("source linked",
		"source_id", sourceID,
		"argument_id", argumentID,
		"case_id", caseID,
	)

	return nil
}

// UnlinkSource detaches a source from an argument
func (s *sourceService) UnlinkSource(ctx context.Context, userID, caseID, sourceID, argumentID string) error {
	if err := s.checkPair(ctx, userID, caseID, sourceID, argumentID); err != nil {
		return err
	}

	if err := s.sourceRepo.Unlink(ctx, sourceID, argumentID); err != nil {
		return err
	}

	s.logger.Info("source unlinked",
		"source_id", sourceID,
		"argument_id", argumentID,
		"case_id", caseID,
	)

	return nil
}

// checkPair verifies the argument and the source both belong to the user's case
func (s *sourceService) checkPair(ctx context.Context, userID, caseID, sourceID, argumentID string) error {
	if err := s.authorizer.CanAccessArgument(ctx, userID, caseID, argumentID); err != nil {
		return err
	}

	if _, err := s.sourceRepo.GetByID(ctx, sourceID, caseID); err != nil {
		return err
	}

	return nil
}

func (s *sourceService) validateRequest(req *dossierSvc.SourceRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxSourceTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.URL,
			validation.RuneLength(0, config.MaxSourceURLLength),
			is.URL,
		),
		validation.Field(&req.Content, validation.RuneLength(0, config.MaxSourceContentLength)),
	)
}
