package dossier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"arguminds/internal/config"
	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"
	dossierSvc "arguminds/internal/domain/services/dossier"
	"arguminds/internal/export"
	"arguminds/internal/metrics"
)

// exportService implements the ExportService interface
type exportService struct {
	caseRepo     dossierRepo.CaseRepository
	argumentRepo dossierRepo.ArgumentRepository
	sourceRepo   dossierRepo.SourceRepository
	registry     *export.Registry
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	caseRepo dossierRepo.CaseRepository,
	argumentRepo dossierRepo.ArgumentRepository,
	sourceRepo dossierRepo.SourceRepository,
	registry *export.Registry,
	m *metrics.Metrics,
	logger *slog.Logger,
) dossierSvc.ExportService {
	return &exportService{
		caseRepo:     caseRepo,
		argumentRepo: argumentRepo,
		sourceRepo:   sourceRepo,
		registry:     registry,
		metrics:      m,
		logger:       logger,
	}
}

// Export renders a case into the requested format
func (s *exportService) Export(ctx context.Context, req *dossierSvc.ExportRequest) (*dossierSvc.ExportResult, error) {
	renderer, err := s.registry.Get(req.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if len(req.GraphImage) > config.MaxGraphImageSize {
		return nil, fmt.Errorf("%w: graph image exceeds %d bytes", domain.ErrValidation, config.MaxGraphImageSize)
	}

	// Scoped by user: another user's case is reported as not found
	c, err := s.caseRepo.GetByID(ctx, req.CaseID, req.UserID)
	if err != nil {
		return nil, err
	}

	args, err := s.argumentRepo.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	sources, err := s.sourceRepo.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	d := ToDossier(c, args, sources)
	d.GraphImage = req.GraphImage
	forest := export.BuildTree(d.Arguments)
	d.Forest = &forest

	format := renderer.Format()
	start := time.Now()
	data, err := renderer.Render(d)
	s.metrics.RecordExport(format.Name, err, time.Since(start), len(data))
	if err != nil {
		s.logger.Error("export failed",
			"case_id", c.ID,
			"format", format.Name,
			"error", err,
		)
		if errors.Is(err, export.ErrUnsupportedImage) {
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return nil, fmt.Errorf("render %s: %w", format.Name, err)
	}

	if len(forest.Promoted) > 0 {
		s.logger.Warn("argument cycles promoted to roots",
			"case_id", c.ID,
			"promoted", forest.Promoted,
		)
	}

	s.logger.Info("case exported",
		"case_id", c.ID,
		"format", format.Name,
		"arguments", len(args),
		"sources", len(sources),
		"bytes", len(data),
		"user_id", req.UserID,
	)

	return &dossierSvc.ExportResult{
		Filename:    export.Filename(c.Title, format.Extension),
		ContentType: format.ContentType,
		Data:        data,
	}, nil
}

// Formats lists the supported format names
func (s *exportService) Formats() []string {
	return s.registry.Formats()
}

// ToDossier maps stored records to the renderer input
func ToDossier(c *models.Case, args []models.Argument, sources []models.Source) *export.Dossier {
	d := &export.Dossier{
		Case: export.CaseMetadata{
			Title:       c.Title,
			Description: c.Description,
			Type:        c.Type,
			Status:      c.Status,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		},
		Arguments: make([]export.ArgumentRecord, 0, len(args)),
		Sources:   make([]export.SourceRecord, 0, len(sources)),
	}

	for _, a := range args {
		rec := export.ArgumentRecord{
			ID:       a.ID,
			Title:    a.Title,
			Content:  a.Content,
			Type:     a.Type,
			ParentID: a.ParentID,
		}
		for _, ref := range a.Sources {
			rec.Sources = append(rec.Sources, export.SourceRef{ID: ref.ID, Title: ref.Title, URL: ref.URL})
		}
		d.Arguments = append(d.Arguments, rec)
	}

	for _, src := range sources {
		d.Sources = append(d.Sources, export.SourceRecord{
			Title:   src.Title,
			URL:     src.URL,
			Content: src.Content,
		})
	}

	return d
}
