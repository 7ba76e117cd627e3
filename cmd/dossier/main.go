// Command dossier renders a case file (YAML or JSON) into DOCX and/or PDF
// without a database, and prints the numbered argument outline.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"arguminds/internal/config"
	"arguminds/internal/export"
)

const formatAll = "all"

// options are the parsed command-line flags
type options struct {
	in      string
	out     string
	format  string
	graph   string
	noColor bool
}

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		die("%v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	d, err := loadDossier(opts.in)
	if err != nil {
		return err
	}

	if opts.graph != "" {
		img, err := os.ReadFile(opts.graph)
		if err != nil {
			return fmt.Errorf("read graph image: %w", err)
		}
		if len(img) > config.MaxGraphImageSize {
			return fmt.Errorf("graph image is %d bytes, limit is %d", len(img), config.MaxGraphImageSize)
		}
		d.GraphImage = img
	}

	registry := export.DefaultRegistry()
	formats, err := selectFormats(registry, opts.format)
	if err != nil {
		return err
	}

	forest := export.BuildTree(d.Arguments)
	d.Forest = &forest
	fmt.Fprintln(stdout, renderOutline(d, forest, !opts.noColor))

	if err := os.MkdirAll(opts.out, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, name := range formats {
		renderer, _ := registry.Get(name)
		data, err := renderer.Render(d)
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		path := filepath.Join(opts.out, export.Filename(d.Case.Title, renderer.Format().Extension))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", path, len(data))
	}

	return nil
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("dossier", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.in, "in", "", "path to the dossier file (YAML or JSON)")
	fs.StringVar(&opts.out, "out", ".", "output directory")
	fs.StringVar(&opts.format, "format", formatAll, "docx, pdf or all")
	fs.StringVar(&opts.graph, "graph", "", "optional PNG or JPEG snapshot of the graph (PDF only)")
	fs.BoolVar(&opts.noColor, "no-color", false, "print the outline without styling")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if strings.TrimSpace(opts.in) == "" {
		return nil, errors.New("-in is required")
	}
	return opts, nil
}

// loadDossier decodes a dossier file. JSON is valid YAML, so one decoder reads both.
func loadDossier(path string) (*export.Dossier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dossier: %w", err)
	}

	var d export.Dossier
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if strings.TrimSpace(d.Case.Title) == "" {
		return nil, fmt.Errorf("parse %s: case.title is required", filepath.Base(path))
	}
	if d.Case.Status == "" {
		d.Case.Status = export.StatusInProgress
	}
	return &d, nil
}

func selectFormats(registry *export.Registry, format string) ([]string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == formatAll {
		return registry.Formats(), nil
	}
	if _, err := registry.Get(format); err != nil {
		return nil, fmt.Errorf("%w (supported: %s, %s)", err, strings.Join(registry.Formats(), ", "), formatAll)
	}
	return []string{format}, nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "dossier: "+format+"\n", args...)
	os.Exit(1)
}
