package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/splicelang/splice/runtime"
	"github.com/splicelang/splice/runtime/notices"
)

// TemplateExt is the suffix gen strips when naming output files:
// server.go.splice generates server.go.
const TemplateExt = ".splice"

// Result is the outcome of generating one template.
type Result struct {
	Input   string
	Output  string
	Skipped bool // cache hit, nothing written
}

// Generator turns template files into generated sources. With a
// manifest attached it skips templates whose input and output digests
// are unchanged since the last run.
type Generator struct {
	OutputDir string    // target directory; "" keeps outputs beside their templates
	Raw       bool      // skip gofmt on generated output
	Force     bool      // regenerate regardless of the manifest
	Manifest  *Manifest // nil disables caching
	Logger    *slog.Logger
}

// OutputPath derives where input's generated file goes.
func (g *Generator) OutputPath(input string) string {
	name := filepath.Base(input)
	if strings.HasSuffix(name, TemplateExt) {
		name = strings.TrimSuffix(name, TemplateExt)
	} else {
		name += ".gen.go"
	}
	dir := g.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name)
}

// Generate processes one template file and writes its output.
// Pipeline errors come back unwrapped so callers can recover their
// source spans for diagnostics.
func (g *Generator) Generate(input string) (Result, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read template %s: %w", input, err)
	}

	target := g.OutputPath(input)
	result := Result{Input: input, Output: target}
	if !g.Force && g.Manifest != nil && g.Manifest.UpToDate(input, data) {
		result.Skipped = true
		return result, nil
	}

	out, err := runtime.Process(data, runtime.Options{
		Name:     input,
		Reporter: notices.NewReporter(),
		Raw:      g.Raw,
		Logger:   g.Logger,
	})
	if err != nil {
		return Result{}, err
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", target, err)
	}

	if g.Manifest != nil {
		g.Manifest.Record(input, data, out, target)
	}
	return result, nil
}
