package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// AnalyzeRequest asks the AI to evaluate one argument
type AnalyzeRequest struct {
	UserID     string `json:"-"`
	CaseID     string `json:"case_id"`
	ArgumentID string `json:"argument_id"`
	Action     string `json:"action"` // analyze, suggest or reformulate
}

// AnalysisService runs and stores AI analyses of arguments.
// Every method checks that userID owns the case and that the argument belongs to it.
type AnalysisService interface {
	// Analyze runs the action against the configured model and persists the result
	Analyze(ctx context.Context, req *AnalyzeRequest) (*dossier.Analysis, error)

	// History returns the latest analyses of an argument, newest first
	History(ctx context.Context, userID, caseID, argumentID string) ([]dossier.Analysis, error)

	DeleteAnalysis(ctx context.Context, userID, caseID, argumentID, id string) error

	// ClearHistory deletes every analysis of an argument
	ClearHistory(ctx context.Context, userID, caseID, argumentID string) error
}
