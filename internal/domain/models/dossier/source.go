package dossier

import (
	"time"
)

// Source is a bibliographic reference attached to a case
type Source struct {
	ID            string    `json:"id" db:"id"`
	CaseID        string    `json:"case_id" db:"case_id"`
	Title         string    `json:"title" db:"title"`
	URL           *string   `json:"url" db:"url"`
	Content       *string   `json:"content" db:"content"`
	ArgumentCount int       `json:"argument_count"` // Computed: number of linked arguments
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
