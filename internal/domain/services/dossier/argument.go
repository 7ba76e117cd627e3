package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// CreateArgumentRequest represents a request to add an argument to a case
type CreateArgumentRequest struct {
	UserID   string            `json:"-"`
	CaseID   string            `json:"-"`
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Type     string            `json:"type"`
	ParentID *string           `json:"parent_id"`
	Position *dossier.Position `json:"position"`
}

// UpdateArgumentRequest replaces the editable fields of an argument
type UpdateArgumentRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Type     string  `json:"type"`
	ParentID *string `json:"parent_id"` // nil or empty detaches the argument
}

// ArgumentService defines business logic operations for arguments.
// Every method checks that userID owns the case.
type ArgumentService interface {
	CreateArgument(ctx context.Context, req *CreateArgumentRequest) (*dossier.Argument, error)

	GetArgument(ctx context.Context, userID, caseID, id string) (*dossier.Argument, error)

	// ListArguments returns the case's arguments oldest first, with linked sources
	ListArguments(ctx context.Context, userID, caseID string) ([]dossier.Argument, error)

	UpdateArgument(ctx context.Context, userID, caseID, id string, req *UpdateArgumentRequest) (*dossier.Argument, error)

	// UpdatePosition stores where the argument was dropped on the graph canvas
	UpdatePosition(ctx context.Context, userID, caseID, id string, pos dossier.Position) error

	// ConnectArguments makes parentID the parent of childID
	ConnectArguments(ctx context.Context, userID, caseID, parentID, childID string) error

	DeleteArgument(ctx context.Context, userID, caseID, id string) error
}
