package dossier

import (
	"context"
	"errors"
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
)

// argumentService implements the ArgumentService interface
type argumentService struct {
	argumentRepo dossierRepo.ArgumentRepository
	caseRepo     dossierRepo.CaseRepository
	txManager    repositories.TransactionManager
	authorizer   services.ResourceAuthorizer
	logger       *slog.Logger
}

// NewArgumentService creates a new argument service
func NewArgumentService(
	argumentRepo dossierRepo.ArgumentRepository,
	caseRepo dossierRepo.CaseRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) dossierSvc.ArgumentService {
	return &argumentService{
		argumentRepo: argumentRepo,
		caseRepo:     caseRepo,
		txManager:    txManager,
		authorizer:   authorizer,
		logger:       logger,
	}
}

// CreateArgument adds an argument to a case
func (s *argumentService) CreateArgument(ctx context.Context, req *dossierSvc.CreateArgumentRequest) (*models.Argument, error) {
	if err := s.authorizer.CanAccessCase(ctx, req.UserID, req.CaseID); err != nil {
		return nil, err
	}

	if err := validateArgumentFields(req.Title, req.Content, req.Type); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	parentID := normalizeOptional(req.ParentID)
	if parentID != nil {
		if err := s.checkParent(ctx, req.CaseID, *parentID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	arg := &models.Argument{
		CaseID:    req.CaseID,
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		Type:      req.Type,
		ParentID:  parentID,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.argumentRepo.Create(txCtx, arg); err != nil {
			return err
		}
		return s.caseRepo.Touch(txCtx, req.CaseID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("argument created",
		"id", arg.ID,
		"case_id", arg.CaseID,
		"type", arg.Type,
		"user_id", req.UserID,
	)

	return arg, nil
}

// GetArgument retrieves one argument of a case
func (s *argumentService) GetArgument(ctx context.Context, userID, caseID, id string) (*models.Argument, error) {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return nil, err
	}

	return s.argumentRepo.GetByID(ctx, id, caseID)
}

// ListArguments returns the case's arguments oldest first
func (s *argumentService) ListArguments(ctx context.Context, userID, caseID string) ([]models.Argument, error) {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return nil, err
	}

	return s.argumentRepo.ListByCase(ctx, caseID)
}

// UpdateArgument replaces title, content, type and parent
func (s *argumentService) UpdateArgument(ctx context.Context, userID, caseID, id string, req *dossierSvc.UpdateArgumentRequest) (*models.Argument, error) {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return nil, err
	}

	if err := validateArgumentFields(req.Title, req.Content, req.Type); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	arg, err := s.argumentRepo.GetByID(ctx, id, caseID)
	if err != nil {
		return nil, err
	}

	parentID := normalizeOptional(req.ParentID)
	if parentID != nil {
		if err := s.checkLink(ctx, caseID, *parentID, id); err != nil {
			return nil, err
		}
	}

	arg.Title = strings.TrimSpace(req.Title)
	arg.Content = strings.TrimSpace(req.Content)
	arg.Type = req.Type
	arg.ParentID = parentID
	arg.UpdatedAt = time.Now()

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.argumentRepo.Update(txCtx, arg); err != nil {
			return err
		}
		return s.caseRepo.Touch(txCtx, caseID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("argument updated",
		"id", arg.ID,
		"case_id", caseID,
		"user_id", userID,
	)

	return arg, nil
}

// UpdatePosition stores the graph canvas position. The case is not touched:
// moving a node is layout, not content.
func (s *argumentService) UpdatePosition(ctx context.Context, userID, caseID, id string, pos models.Position) error {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return err
	}

	return s.argumentRepo.UpdatePosition(ctx, id, caseID, pos)
}

// ConnectArguments makes parentID the parent of childID
func (s *argumentService) ConnectArguments(ctx context.Context, userID, caseID, parentID, childID string) error {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return err
	}

	if parentID == "" || childID == "" {
		return fmt.Errorf("%w: source and target are required", domain.ErrValidation)
	}

	if _, err := s.argumentRepo.GetByID(ctx, childID, caseID); err != nil {
		return err
	}
	if err := s.checkLink(ctx, caseID, parentID, childID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.argumentRepo.SetParent(txCtx, childID, caseID, &parentID); err != nil {
			return err
		}
		return s.caseRepo.Touch(txCtx, caseID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("arguments connected",
		"parent_id", parentID,
		"child_id", childID,
		"case_id", caseID,
		"user_id", userID,
	)

	return nil
}

// DeleteArgument deletes an argument; its children become roots
func (s *argumentService) DeleteArgument(ctx context.Context, userID, caseID, id string) error {
	if err := s.authorizer.CanAccessCase(ctx, userID, caseID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.argumentRepo.Delete(txCtx, id, caseID); err != nil {
			return err
		}
		return s.caseRepo.Touch(txCtx, caseID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("argument deleted",
		"id", id,
		"case_id", caseID,
		"user_id", userID,
	)

	return nil
}

// checkParent verifies that the parent exists in the same case
func (s *argumentService) checkParent(ctx context.Context, caseID, parentID string) error {
	if _, err := s.argumentRepo.GetByID(ctx, parentID, caseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: parent %s is not an argument of this case", domain.ErrValidation, parentID)
		}
		return err
	}
	return nil
}

// checkLink verifies that childID may hang under parentID: the parent exists
// in the case, differs from the child and is not one of its descendants.
func (s *argumentService) checkLink(ctx context.Context, caseID, parentID, childID string) error {
	if parentID == childID {
		return fmt.Errorf("%w: an argument cannot be its own parent", domain.ErrValidation)
	}

	args, err := s.argumentRepo.ListByCase(ctx, caseID)
	if err != nil {
		return err
	}

	parents := make(map[string]string, len(args))
	for _, a := range args {
		if a.ParentID != nil {
			parents[a.ID] = *a.ParentID
		} else {
			parents[a.ID] = ""
		}
	}

	if _, ok := parents[parentID]; !ok {
		return fmt.Errorf("%w: parent %s is not an argument of this case", domain.ErrValidation, parentID)
	}

	// Walk up from the new parent; meeting the child means a cycle
	seen := map[string]bool{}
	for cur := parentID; cur != "" && !seen[cur]; cur = parents[cur] {
		if cur == childID {
			return fmt.Errorf("%w: %s is a descendant of %s", domain.ErrValidation, parentID, childID)
		}
		seen[cur] = true
	}

	return nil
}

func validateArgumentFields(title, content, argType string) error {
	return validation.Errors{
		"title": validation.Validate(title,
			validation.Required,
			validation.RuneLength(1, config.MaxArgumentTitleLength),
			validation.By(notBlank),
		),
		"content": validation.Validate(content,
			validation.Required,
			validation.RuneLength(1, config.MaxArgumentContentLength),
			validation.By(notBlank),
		),
		"type": validation.Validate(argType,
			validation.Required,
			validation.By(validArgumentType),
		),
	}.Filter()
}
