// Package export turns a case's flat argument list into a numbered forest and
// renders it, together with the case's sources, into downloadable documents.
//
// The package is pure: it never touches the database, the network or the
// file system. Callers hand it fully materialized records and receive bytes.
package export

import "time"

// Argument type codes
const (
	TypePrincipal  = "PRINCIPAL"
	TypeSupport    = "SUPPORT"
	TypeObjection  = "OBJECTION"
	TypeRefutation = "REFUTATION"
)

// Case status codes
const (
	StatusInProgress = "EN_COURS"
	StatusDone       = "TERMINE"
	StatusArchived   = "ARCHIVE"
)

// SourceRef is the lightweight view of a source linked to an argument
type SourceRef struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	URL   *string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ArgumentRecord is one argument as stored, referencing its parent by ID
type ArgumentRecord struct {
	ID       string      `json:"id" yaml:"id"`
	Title    string      `json:"title" yaml:"title"`
	Content  string      `json:"content" yaml:"content"`
	Type     string      `json:"type" yaml:"type"`
	ParentID *string     `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Sources  []SourceRef `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// SourceRecord is a bibliographic source of the case, rendered in the source table
type SourceRecord struct {
	Title   string  `json:"title" yaml:"title"`
	URL     *string `json:"url,omitempty" yaml:"url,omitempty"`
	Content *string `json:"content,omitempty" yaml:"content,omitempty"`
}

// CaseMetadata is the descriptive header of an exported case
type CaseMetadata struct {
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
	Type        *string   `json:"type,omitempty" yaml:"type,omitempty"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Dossier is everything a renderer needs for one export
type Dossier struct {
	Case      CaseMetadata     `json:"case" yaml:"case"`
	Arguments []ArgumentRecord `json:"arguments" yaml:"arguments"`
	Sources   []SourceRecord   `json:"sources" yaml:"sources"`

	// GraphImage is an optional PNG or JPEG snapshot of the argument graph.
	// Only the paginated renderer embeds it.
	GraphImage []byte `json:"-" yaml:"-"`

	// GeneratedAt stamps the document; zero means time.Now()
	GeneratedAt time.Time `json:"-" yaml:"-"`

	// Forest is the argument forest built from Arguments. Nil means each
	// renderer builds it.
	Forest *Forest `json:"-" yaml:"-"`
}

func (d *Dossier) forest() Forest {
	if d.Forest != nil {
		return *d.Forest
	}
	return BuildTree(d.Arguments)
}

func (d *Dossier) generatedAt() time.Time {
	if d.GeneratedAt.IsZero() {
		return time.Now()
	}
	return d.GeneratedAt
}
