// Package html renders trace reports from trace.Trace.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"

	"go.abhg.dev/trace2html/internal/argfmt"
	"go.abhg.dev/trace2html/internal/excerpt"
	"go.abhg.dev/trace2html/internal/filelink"
	"go.abhg.dev/trace2html/internal/highlight"
	"go.abhg.dev/trace2html/internal/pathx"
	"go.abhg.dev/trace2html/internal/relative"
	"go.abhg.dev/trace2html/internal/trace"
)

const _staticDir = "_"

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/**
	_staticFS embed.FS

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_reportTmpl = template.Must(
		template.New("report.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/report.html", "tmpl/layout.html"),
	)

	_indexTmpl = template.Must(
		template.New("index.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/index.html", "tmpl/layout.html"),
	)
)

// Highlighter supplies the style sheet that highlighted excerpts
// refer to.
type Highlighter interface {
	WriteCSS(io.Writer) error
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Excerpter renders per-line source excerpts for frames.
type Excerpter interface {
	File(path string, line, radius int) []excerpt.Fragment
}

var _ Excerpter = (*excerpt.Excerpter)(nil)

// Renderer renders trace reports into HTML.
type Renderer struct {
	// Whether we're in embedded mode.
	// In this mode, output will only contain the report bodies
	// and will not generate complete, stylized HTML pages.
	Embedded bool

	// Highlighter renders the style sheet for code excerpts.
	Highlighter Highlighter

	// Excerpter extracts highlighted excerpts of the sources that
	// frames point at. If unset, reports render without excerpts.
	Excerpter Excerpter

	// Linker builds links from frame positions to the user's editor
	// or source browser. If unset, positions render unlinked.
	Linker filelink.Formatter

	// Args renders the argument lists recorded on frames.
	// If unset, a plain UTF-8 formatter is used.
	Args *argfmt.Formatter

	// SourceRoot, if set, is trimmed off displayed file paths.
	// The full path stays available as a tooltip.
	SourceRoot string

	// Context is the number of source lines shown around a frame's
	// line. Negative means the whole file.
	Context int
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

// WriteStatic dumps the contents of static/ into the given directory.
//
// This is a no-op if the renderer is running in embedded mode.
func (r *Renderer) WriteStatic(dir string) error {
	if r.Embedded {
		return nil
	}

	dir = filepath.Join(dir, _staticDir)
	static, err := fs.Sub(_staticFS, "static")
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		outPath := filepath.Join(dir, path)
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o1755)
		}

		bs, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}

		// FIXME: This is a hack. That we need to append to main.css
		// should be represented elsewhere.
		if path == "css/main.css" {
			buff := bytes.NewBuffer(bs)
			buff.WriteString("\n")
			if err := r.Highlighter.WriteCSS(buff); err != nil {
				return err
			}
			bs = buff.Bytes()
		}

		return os.WriteFile(outPath, bs, 0o644)
	}))
}

// ReportInfo specifies the trace report that should be rendered.
type ReportInfo struct {
	*trace.Trace

	// Path to this report's page from the root of the output.
	Path string
}

// Title is the heading under which this report renders.
func (i *ReportInfo) Title() string {
	if i.Class == "" {
		return path.Base(i.Path)
	}
	return argfmt.ShortName(i.Class)
}

// RenderReport renders a single trace report.
func (r *Renderer) RenderReport(w io.Writer, info *ReportInfo) error {
	render := render{
		Path:       info.Path,
		Excerpter:  r.Excerpter,
		Linker:     r.Linker,
		Args:       r.Args,
		SourceRoot: r.SourceRoot,
		Context:    r.Context,
	}
	page := reportPage{
		ReportInfo: info,
		Frames:     render.frameViews(info.Frames),
	}
	return errtrace.Wrap(template.Must(_reportTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), &page))
}

type reportPage struct {
	*ReportInfo

	// Frames of the trace, prepared for display.
	Frames []frameView
}

// frameView is a single stack frame prepared for display.
type frameView struct {
	// Index of the frame, innermost first, 0-based.
	Index int

	// Func is the abbreviated call form of the frame's function,
	// or an empty string if the function is unknown.
	Func template.HTML

	// File is the display form of the frame's file path,
	// and FullFile the path exactly as recorded.
	File     string
	FullFile string

	Line int

	// Link opens the position in the user's editor, if one applies.
	// Editor schemes (vscode://, phpstorm://, ...) are not on
	// html/template's URL allowlist, and the destination comes from
	// caller-supplied templates, so it skips the sanitizer.
	Link template.URL

	// Excerpt is the highlighted source around Line,
	// or an empty string if the file is not available.
	Excerpt template.HTML

	// Args is the frame's rendered argument list, and ArgsText its
	// plain-text form for tooltips.
	Args     template.HTML
	ArgsText string
}

// ReportIndex holds information about a listing of rendered reports.
type ReportIndex struct {
	// Path to the index page from the root of the output.
	Path string

	Reports []ReportRef
}

// Title is the heading of the index page.
func (*ReportIndex) Title() string { return "Traces" }

// ReportRef is a reference to a rendered report from the index page.
type ReportRef struct {
	// Path to the report's page from the root of the output.
	Path string

	// Class and Message identify the recorded failure.
	Class   string
	Message string

	// Frames is the depth of the recorded stack.
	Frames int
}

// RenderIndex renders the listing of rendered reports as HTML.
func (r *Renderer) RenderIndex(w io.Writer, idx *ReportIndex) error {
	render := render{
		Path: idx.Path,
		Args: r.Args,
	}
	return errtrace.Wrap(template.Must(_indexTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), idx))
}

type render struct {
	Path string

	Excerpter  Excerpter
	Linker     filelink.Formatter
	Args       *argfmt.Formatter
	SourceRoot string
	Context    int
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"abbrClass":    r.abbrClass,
		"abbrFunc":     r.abbrFunc,
		"static":       r.static,
		"relativePath": r.relativePath,
	}
}

func (r *render) relativePath(p string) string {
	return relative.Path(r.Path, p)
}

func (r *render) static(p string) string {
	return r.relativePath(path.Join(_staticDir, p))
}

func (r *render) abbrClass(name string) template.HTML {
	return template.HTML(argfmt.AbbrClass(name))
}

func (r *render) abbrFunc(name string) template.HTML {
	return template.HTML(argfmt.AbbrFunc(name))
}

func (r *render) args() *argfmt.Formatter {
	if r.Args != nil {
		return r.Args
	}
	return new(argfmt.Formatter)
}

func (r *render) frameViews(frames []trace.Frame) []frameView {
	views := make([]frameView, len(frames))
	for i, f := range frames {
		views[i] = r.frameView(i, f)
	}
	return views
}

func (r *render) frameView(idx int, f trace.Frame) frameView {
	view := frameView{
		Index:    idx,
		Func:     template.HTML(argfmt.AbbrFunc(f.Func)),
		File:     r.displayPath(f.File),
		FullFile: f.File,
		Line:     f.Line,
	}

	if r.Linker != nil {
		if dest, ok := r.Linker.Format(f.File, f.Line); ok {
			view.Link = template.URL(dest)
		}
	}

	if r.Excerpter != nil && f.File != "" {
		frags := r.Excerpter.File(f.File, f.Line, r.Context)
		view.Excerpt = r.excerptHTML(fmt.Sprintf("frame%d", idx), frags)
	}

	if len(f.Args) > 0 {
		args := r.args()
		view.Args = template.HTML(args.FormatHTML(f.Args))
		// Tooltips hold plain text, so entities decode back.
		view.ArgsText = html.UnescapeString(args.FormatText(f.Args))
	}

	return view
}

// excerptHTML assembles per-line fragments into a numbered excerpt
// list. The anchor prefix keeps line anchors unique across frames of
// the same page.
func (r *render) excerptHTML(anchor string, frags []excerpt.Fragment) template.HTML {
	if len(frags) == 0 {
		return ""
	}

	var sb strings.Builder
	// The "chroma" class scopes the generated token styles
	// now that the blob's own wrapper is gone.
	fmt.Fprintf(&sb, `<ol class="excerpt chroma" start="%d">`, frags[0].Line)
	for _, f := range frags {
		sb.WriteString("<li")
		if f.Selected {
			sb.WriteString(` class="selected"`)
		}
		sb.WriteString(">")
		fmt.Fprintf(&sb, `<a class="anchor" id="%s-line%d"></a>`, anchor, f.Line)
		sb.WriteString("<code>")
		sb.WriteString(f.Markup)
		sb.WriteString("</code></li>")
	}
	sb.WriteString("</ol>")
	return template.HTML(sb.String())
}

// displayPath trims the source root off a file path for display.
func (r *render) displayPath(file string) string {
	root := strings.TrimSuffix(r.SourceRoot, "/")
	if root == "" || !pathx.Descends(root, file) {
		return file
	}
	if rel := relative.Path(root, file); rel != "" {
		return rel
	}
	return file
}
