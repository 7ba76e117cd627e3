package dossier

import (
	"time"
)

// Case is a legal case or debate owned by one user
type Case struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Type        *string   `json:"type" db:"type"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CaseFilter narrows a case listing. Empty fields match everything.
type CaseFilter struct {
	Status string
	Type   string
	Query  string // Case-insensitive title search
}
