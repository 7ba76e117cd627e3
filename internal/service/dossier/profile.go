package dossier

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"arguminds/internal/config"
	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProfileService implements the ProfileService interface
type ProfileService struct {
	profileRepo dossierRepo.ProfileRepository
	logger      *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo dossierRepo.ProfileRepository,
	logger *slog.Logger,
) dossierSvc.ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// defaultProfile is returned until the user saves a profile
func (s *ProfileService) defaultProfile(userID uuid.UUID) *models.Profile {
	now := time.Now()
	return &models.Profile{
		UserID:    userID,
		Role:      models.DefaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetProfile retrieves the profile of a user
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if profile == nil {
		s.logger.Debug("no profile found, returning defaults", "user_id", userID)
		profile = s.defaultProfile(userID)
	}

	profile.RoleLabel = models.RoleLabel(profile.Role)
	return profile, nil
}

// UpdateProfile updates the name and/or role
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dossierSvc.UpdateProfileRequest) (*models.Profile, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get existing profile: %w", err)
	}
	if profile == nil {
		profile = s.defaultProfile(userID)
	}

	if req.Name != nil {
		profile.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}

	// A stored profile always carries a usable name
	if len([]rune(profile.Name)) < config.MinProfileNameLength {
		return nil, fmt.Errorf("%w: name: the length must be between %d and %d",
			domain.ErrValidation, config.MinProfileNameLength, config.MaxProfileNameLength)
	}

	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("profile updated",
		"user_id", userID,
		"role", profile.Role,
	)

	profile.RoleLabel = models.RoleLabel(profile.Role)
	return profile, nil
}

// CaseTypes returns the case types offered to the user's role
func (s *ProfileService) CaseTypes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.CaseTypesForRole(profile.Role), nil
}

func (s *ProfileService) validateUpdateRequest(req *dossierSvc.UpdateProfileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.NilOrNotEmpty,
			validation.By(func(value interface{}) error {
				name, ok := stringValue(value)
				if !ok {
					return nil
				}
				n := len([]rune(strings.TrimSpace(name)))
				if n < config.MinProfileNameLength || n > config.MaxProfileNameLength {
					return fmt.Errorf("the length must be between %d and %d",
						config.MinProfileNameLength, config.MaxProfileNameLength)
				}
				return nil
			}),
		),
		validation.Field(&req.Role,
			validation.NilOrNotEmpty,
			validation.By(func(value interface{}) error {
				role, ok := stringValue(value)
				if ok && role != "" && !slices.Contains(models.Roles, role) {
					return fmt.Errorf("unknown role %q", role)
				}
				return nil
			}),
		),
	)
}
