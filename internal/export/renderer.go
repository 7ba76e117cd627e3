package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownFormat is returned when no renderer is registered for a format
var ErrUnknownFormat = errors.New("unknown export format")

// ErrUnsupportedImage is returned when the graph snapshot is not a readable PNG or JPEG
var ErrUnsupportedImage = errors.New("unsupported graph image")

// Format describes the file produced by a renderer
type Format struct {
	Name        string
	Extension   string
	ContentType string
}

// Known formats
var (
	FormatDOCX = Format{
		Name:        "docx",
		Extension:   "docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	FormatPDF = Format{
		Name:        "pdf",
		Extension:   "pdf",
		ContentType: "application/pdf",
	}
)

// Renderer turns a dossier into a complete document.
//
// Implementations build a fresh document per call and hold no mutable state,
// so one Renderer may serve concurrent requests. On error no bytes are returned.
type Renderer interface {
	Render(d *Dossier) ([]byte, error)
	Format() Format
}

// Registry maps format names to renderers
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates a registry holding the given renderers
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		r.Register(renderer)
	}
	return r
}

// DefaultRegistry returns a registry with the DOCX and PDF renderers
func DefaultRegistry() *Registry {
	return NewRegistry(NewDocxRenderer(), NewPDFRenderer(PDFOptions{}))
}

// Register adds or replaces the renderer for its format
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Format().Name] = renderer
}

// Get returns the renderer for a format name (case-insensitive)
func (r *Registry) Get(name string) (Renderer, error) {
	renderer, ok := r.renderers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return renderer, nil
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
