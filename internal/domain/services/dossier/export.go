package dossier

import (
	"context"
)

// ExportRequest asks for a downloadable document of a case
type ExportRequest struct {
	UserID     string
	CaseID     string
	Format     string // "docx" or "pdf"
	GraphImage []byte // Optional PNG/JPEG snapshot of the graph (PDF only)
}

// ExportResult is a rendered document ready to be sent as an attachment
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders cases into documents
type ExportService interface {
	Export(ctx context.Context, req *ExportRequest) (*ExportResult, error)

	// Formats lists the supported format names
	Formats() []string
}
