package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"

	"go.abhg.dev/trace2html/internal/errdefer"
	"go.abhg.dev/trace2html/internal/html"
	"go.abhg.dev/trace2html/internal/trace"
)

// Loader reads recorded traces from disk.
type Loader interface {
	LoadTrace(path string) (*trace.Trace, error)
}

var _ Loader = (*trace.FileLoader)(nil)

// Renderer renders trace reports and their listing to HTML.
type Renderer interface {
	WriteStatic(string) error
	RenderReport(io.Writer, *html.ReportInfo) error
	RenderIndex(io.Writer, *html.ReportIndex) error
}

var _ Renderer = (*html.Renderer)(nil)

// Generator renders user-specified trace files into a report tree.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log      *log.Logger
	Loader   Loader
	Renderer Renderer
	OutDir   string
}

// Generate renders each trace file into its own directory under
// OutDir, named after the file, and ties them together with a
// listing page at the root.
func (g *Generator) Generate(files []string) error {
	if err := os.MkdirAll(g.OutDir, 0o1755); err != nil {
		return errtrace.Wrap(err)
	}
	if err := g.Renderer.WriteStatic(g.OutDir); err != nil {
		return errtrace.Wrap(err)
	}

	idx := html.ReportIndex{
		Reports: make([]html.ReportRef, 0, len(files)),
	}
	seen := make(map[string]string) // stem => source file
	for _, file := range files {
		stem := reportStem(file)
		if prev, ok := seen[stem]; ok {
			return errtrace.Errorf(
				"%v and %v both render to %v", prev, file, stem)
		}
		seen[stem] = file

		ref, err := g.generateReport(stem, file)
		if err != nil {
			return fmt.Errorf("%v: %w", file, err)
		}
		idx.Reports = append(idx.Reports, *ref)
	}

	return errtrace.Wrap(g.generateIndex(&idx))
}

func (g *Generator) generateReport(stem, file string) (_ *html.ReportRef, err error) {
	t, err := g.Loader.LoadTrace(file)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	g.Log.Printf("Rendering %v", stem)

	dir := filepath.Join(g.OutDir, stem)
	if err := os.MkdirAll(dir, 0o1755); err != nil {
		return nil, errtrace.Wrap(err)
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	info := html.ReportInfo{Trace: t, Path: stem}
	if err := g.Renderer.RenderReport(f, &info); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &html.ReportRef{
		Path:    stem,
		Class:   t.Class,
		Message: t.Message,
		Frames:  len(t.Frames),
	}, nil
}

func (g *Generator) generateIndex(idx *html.ReportIndex) (err error) {
	g.Log.Printf("Rendering index")

	f, err := os.Create(filepath.Join(g.OutDir, "index.html"))
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap(g.Renderer.RenderIndex(f, idx))
}

// reportStem names the directory a trace file renders into:
// the file's base name without its extension.
func reportStem(file string) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return stem
}
