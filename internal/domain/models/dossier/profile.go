package dossier

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleLawyer  = "AVOCAT"
	RoleDebater = "DEBATTEUR"
	DefaultRole = RoleLawyer
)

const otherCaseType = "Autre"

// Roles lists the supported roles
var Roles = []string{RoleLawyer, RoleDebater}

var roleLabels = map[string]string{
	RoleLawyer:  "Avocat",
	RoleDebater: "Débatteur",
}

var caseTypesByRole = map[string][]string{
	RoleLawyer:  {"Civil", "Pénal", "Commercial", "Administratif", otherCaseType},
	RoleDebater: {"Débat", "Motion", "Résolution", otherCaseType},
}

// Profile holds the display name and role of a user
type Profile struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	RoleLabel string    `json:"role_label"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RoleLabel returns the display label of a role; unknown roles are returned as is
func RoleLabel(role string) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return role
}

// CaseTypesForRole returns the case types offered to a role.
// Any role other than DEBATTEUR gets the lawyer's list.
func CaseTypesForRole(role string) []string {
	types, ok := caseTypesByRole[role]
	if !ok {
		types = caseTypesByRole[RoleLawyer]
	}
	out := make([]string, len(types))
	copy(out, types)
	return out
}
