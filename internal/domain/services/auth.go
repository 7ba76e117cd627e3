package services

import "context"

// ResourceAuthorizer checks if a user can access resources.
// Current implementation: ownership-based (user owns case).
//
// Services call the authorizer before operating on a case's arguments,
// sources or analyses.
type ResourceAuthorizer interface {
	// CanAccessCase checks if user can access a case
	CanAccessCase(ctx context.Context, userID, caseID string) error

	// CanAccessArgument checks if user can access an argument (via its case).
	// Returns ErrNotFound when the argument does not belong to caseID.
	CanAccessArgument(ctx context.Context, userID, caseID, argumentID string) error
}
