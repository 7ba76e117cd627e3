package auth

import (
	"context"
	"errors"
	"fmt"

	"arguminds/internal/domain"
	dossierRepo "arguminds/internal/domain/repositories/dossier"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a resource if they own the case that contains it.
type OwnerBasedAuthorizer struct {
	caseRepo     dossierRepo.CaseRepository
	argumentRepo dossierRepo.ArgumentRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	caseRepo dossierRepo.CaseRepository,
	argumentRepo dossierRepo.ArgumentRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		caseRepo:     caseRepo,
		argumentRepo: argumentRepo,
	}
}

// CanAccessCase checks if user owns the case
func (a *OwnerBasedAuthorizer) CanAccessCase(ctx context.Context, userID, caseID string) error {
	// CaseRepository.GetByID already filters by userID
	_, err := a.caseRepo.GetByID(ctx, caseID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("access denied to case %s: %w", caseID, domain.ErrForbidden)
		}
		return fmt.Errorf("check case access: %w", err)
	}
	return nil
}

// CanAccessArgument checks if user owns the case and the argument belongs to it
func (a *OwnerBasedAuthorizer) CanAccessArgument(ctx context.Context, userID, caseID, argumentID string) error {
	if err := a.CanAccessCase(ctx, userID, caseID); err != nil {
		return err
	}

	// Scoped by case: an argument of another case is reported as not found
	if _, err := a.argumentRepo.GetByID(ctx, argumentID, caseID); err != nil {
		return fmt.Errorf("get argument for auth: %w", err)
	}
	return nil
}
