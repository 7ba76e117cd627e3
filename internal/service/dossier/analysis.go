package dossier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"arguminds/internal/config"
	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"
	"arguminds/internal/domain/services"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/metrics"
	"arguminds/internal/service/llm"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AnalysisConfig wires the model used for analyses
type AnalysisConfig struct {
	Completer llm.Completer // nil disables Analyze
	Prompts   *llm.PromptCatalog
	Model     string
}

// analysisService implements the AnalysisService interface
type analysisService struct {
	argumentRepo dossierRepo.ArgumentRepository
	analysisRepo dossierRepo.AnalysisRepository
	authorizer   services.ResourceAuthorizer
	cfg          AnalysisConfig
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	argumentRepo dossierRepo.ArgumentRepository,
	analysisRepo dossierRepo.AnalysisRepository,
	authorizer services.ResourceAuthorizer,
	cfg AnalysisConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) dossierSvc.AnalysisService {
	return &analysisService{
		argumentRepo: argumentRepo,
		analysisRepo: analysisRepo,
		authorizer:   authorizer,
		cfg:          cfg,
		metrics:      m,
		logger:       logger,
	}
}

// Analyze runs the action on one argument and stores the result
func (s *analysisService) Analyze(ctx context.Context, req *dossierSvc.AnalyzeRequest) (*models.Analysis, error) {
	if err := s.validateAnalyzeRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessCase(ctx, req.UserID, req.CaseID); err != nil {
		return nil, err
	}

	arg, err := s.argumentRepo.GetByID(ctx, req.ArgumentID, req.CaseID)
	if err != nil {
		return nil, err
	}

	if s.cfg.Completer == nil || s.cfg.Prompts == nil {
		return nil, fmt.Errorf("%w: AI analysis is not configured", domain.ErrUnavailable)
	}

	parent, err := s.parentOf(ctx, arg)
	if err != nil {
		return nil, err
	}

	prompt, err := s.cfg.Prompts.Render(req.Action, llm.ArgumentContext{Argument: arg, Parent: parent}.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	raw, err := s.cfg.Completer.Complete(ctx, s.cfg.Model, s.cfg.Prompts.System, prompt)
	if err != nil {
		s.metrics.RecordAnalysis(req.Action, err)
		s.logger.Error("AI call failed",
			"argument_id", arg.ID,
			"action", req.Action,
			"model", s.cfg.Model,
			"error", err,
		)
		return nil, fmt.Errorf("analyze argument: %w", err)
	}

	result, err := llm.ExtractJSONObject(raw)
	s.metrics.RecordAnalysis(req.Action, err)
	if err != nil {
		s.logger.Warn("AI answer without JSON object",
			"argument_id", arg.ID,
			"action", req.Action,
			"answer_length", len(raw),
		)
		return nil, err
	}

	analysis := &models.Analysis{
		ArgumentID: arg.ID,
		Action:     req.Action,
		Result:     result,
		Model:      s.cfg.Model,
		CreatedAt:  time.Now(),
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, err
	}

	s.logger.Info("argument analyzed",
		"id", analysis.ID,
		"argument_id", arg.ID,
		"case_id", req.CaseID,
		"action", req.Action,
		"user_id", req.UserID,
	)

	return analysis, nil
}

// History returns the latest analyses of an argument
func (s *analysisService) History(ctx context.Context, userID, caseID, argumentID string) ([]models.Analysis, error) {
	if err := s.authorizer.CanAccessArgument(ctx, userID, caseID, argumentID); err != nil {
		return nil, err
	}

	return s.analysisRepo.ListByArgument(ctx, argumentID, config.AnalysisHistoryLimit)
}

// DeleteAnalysis deletes one analysis
func (s *analysisService) DeleteAnalysis(ctx context.Context, userID, caseID, argumentID, id string) error {
	if err := s.authorizer.CanAccessArgument(ctx, userID, caseID, argumentID); err != nil {
		return err
	}

	if err := s.analysisRepo.Delete(ctx, id, argumentID); err != nil {
		return err
	}

	s.logger.Info("analysis deleted",
		"id", id,
		"argument_id", argumentID,
		"user_id", userID,
	)

	return nil
}

// ClearHistory deletes every analysis of an argument
func (s *analysisService) ClearHistory(ctx context.Context, userID, caseID, argumentID string) error {
	if err := s.authorizer.CanAccessArgument(ctx, userID, caseID, argumentID); err != nil {
		return err
	}

	n, err := s.analysisRepo.DeleteByArgument(ctx, argumentID)
	if err != nil {
		return err
	}

	s.logger.Info("analysis history cleared",
		"argument_id", argumentID,
		"deleted", n,
		"user_id", userID,
	)

	return nil
}

// parentOf loads the parent argument; a dangling parent reference yields nil
func (s *analysisService) parentOf(ctx context.Context, arg *models.Argument) (*models.Argument, error) {
	if arg.ParentID == nil || *arg.ParentID == "" {
		return nil, nil
	}

	parent, err := s.argumentRepo.GetByID(ctx, *arg.ParentID, arg.CaseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parent, nil
}

func (s *analysisService) validateAnalyzeRequest(req *dossierSvc.AnalyzeRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CaseID, validation.Required),
		validation.Field(&req.ArgumentID, validation.Required),
		validation.Field(&req.Action,
			validation.Required,
			validation.By(func(value interface{}) error {
				action, _ := value.(string)
				if action != "" && !slices.Contains(models.AnalysisActions, action) {
					return fmt.Errorf("unknown action %q", action)
				}
				return nil
			}),
		),
	)
}
