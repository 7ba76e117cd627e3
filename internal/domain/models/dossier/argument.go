package dossier

import (
	"time"
)

// Position is where an argument sits on the graph canvas
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SourceRef is the short form of a source linked to an argument
type SourceRef struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	URL   *string `json:"url"`
}

// Argument is a node of a case's argument graph.
// ParentID links it to the argument it supports or contests.
type Argument struct {
	ID        string      `json:"id" db:"id"`
	CaseID    string      `json:"case_id" db:"case_id"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	Type      string      `json:"type" db:"type"`
	ParentID  *string     `json:"parent_id" db:"parent_id"`
	Position  *Position   `json:"position,omitempty" db:"position"`
	Sources   []SourceRef `json:"sources"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
