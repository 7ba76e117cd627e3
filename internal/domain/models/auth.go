package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	// Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	jwt.RegisteredClaims

	Email        string                   `json:"email"`
	Phone        string                   `json:"phone"`
	AppMetadata  map[string]interface{}   `json:"app_metadata"`
	UserMetadata map[string]interface{}   `json:"user_metadata"`
	Role         string                   `json:"role"` // "authenticated" or "anon"
	AAL          string                   `json:"aal"`  // Authentication Assurance Level: "aal1" or "aal2"
	AMR          []map[string]interface{} `json:"amr"`  // Authentication Method References
	SessionID    string                   `json:"session_id"`
	IsAnonymous  bool                     `json:"is_anonymous"`
}

// AuthenticatedRole is the role Supabase puts in tokens of signed-in users
const AuthenticatedRole = "authenticated"

// GetUserID returns the user ID from the JWT subject claim.
// Case ownership and profiles are keyed by this value.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}
