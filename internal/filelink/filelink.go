// Package filelink builds links from source file positions to the
// place the user reads code: an editor, an IDE, or a source browser.
//
// Link destinations are text templates rendered with a [Position].
// Which template applies to a position is decided by file path
// prefix, so different source roots can link to different places.
package filelink

import (
	"bytes"
	"strings"
	"text/template"

	"go.abhg.dev/trace2html/internal/pathtree"
)

// Position is the data available to link templates.
type Position struct {
	// Path is the source file's path as recorded in the trace.
	Path string

	// Line is the 1-indexed line number within the file.
	Line int
}

// Formatter turns file positions into link destinations.
type Formatter interface {
	// Format returns the destination for the given position,
	// or false if no link applies to it.
	Format(path string, line int) (dest string, ok bool)
}

var (
	_ Formatter = None{}
	_ Formatter = (*Templates)(nil)
)

// None is a Formatter with no destinations:
// every position renders unlinked.
type None struct{}

// Format reports no link for every position.
func (None) Format(string, int) (string, bool) { return "", false }

// Templates routes positions to link templates by file path prefix.
// Longer prefixes win over shorter ones. Its zero value is an empty
// router that formats no links.
type Templates struct {
	templates pathtree.Root[*template.Template]
	fallback  *template.Template
}

// Set routes positions under the given path prefix to tmpl.
func (ts *Templates) Set(prefix string, tmpl *template.Template) {
	ts.templates.Set(prefix, tmpl)
}

// SetFallback sets the template used for positions no prefix covers.
func (ts *Templates) SetFallback(tmpl *template.Template) {
	ts.fallback = tmpl
}

// Format renders the template routed for path. Positions without a
// matching template, and templates that render to an empty string,
// report no link.
func (ts *Templates) Format(path string, line int) (string, bool) {
	tmpl, ok := ts.templates.Lookup(path)
	if !ok {
		tmpl = ts.fallback
	}
	if tmpl == nil {
		return "", false
	}

	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, Position{Path: path, Line: line}); err != nil {
		return "", false
	}

	dest := strings.TrimSpace(buff.String())
	if dest == "" {
		return "", false
	}
	return dest, true
}
