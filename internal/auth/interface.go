package auth

import "arguminds/internal/domain/models"

// JWTVerifier defines the interface for JWT token verification.
// The auth middleware only depends on this interface.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, anonymous or badly signed.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
