package highlight

import (
	"html"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"

	"go.abhg.dev/trace2html/internal/charsetx"
	"go.abhg.dev/trace2html/internal/excerpt"
)

// Highlighter renders source files into highlighted blobs.
// Lexers are picked per file from the file name, falling back to
// content analysis and finally to plain text.
type Highlighter struct {
	// Style used for syntax highlighting of code.
	// Defaults to [PlainStyle].
	Style *chroma.Style

	// UseClasses specifies whether the highlighter
	// uses inline 'style' attributes for highlighting,
	// or classes, assuming use of an appropriate style sheet.
	UseClasses bool

	// Charset names the character set source files are stored in.
	// Files are converted to UTF-8 before highlighting.
	// Empty means UTF-8.
	Charset string

	// DebugLog, if set, reports files whose language could not be
	// determined.
	DebugLog *log.Logger

	once      sync.Once
	formatter *chromahtml.Formatter
	css       map[chroma.TokenType]string
}

func (h *Highlighter) init() {
	h.once.Do(func() {
		h.formatter = chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(h.UseClasses),
		)
		if h.UseClasses {
			return
		}

		// Inline mode precomputes per-token CSS relative to the
		// background, matching how chroma's own HTML formatter
		// styles tokens.
		sty := h.style()
		bg := sty.Get(chroma.Background)
		h.css = make(map[chroma.TokenType]string, len(chroma.StandardTypes))
		for tt := range chroma.StandardTypes {
			entry := sty.Get(tt)
			if tt != chroma.Background {
				entry = entry.Sub(bg)
			}
			if !entry.IsZero() {
				h.css[tt] = chromahtml.StyleEntryToCSS(entry)
			}
		}
	})
}

func (h *Highlighter) style() *chroma.Style {
	if h.Style != nil {
		return h.Style
	}
	return PlainStyle
}

// WriteCSS writes the style classes for this highlighter to writer.
// If this highlighter is not using classes, WriteCSS is a no-op.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	h.init()

	if !h.UseClasses {
		return nil
	}

	return errtrace.Wrap(h.formatter.WriteCSS(w, h.style()))
}

// HighlightFile reads the source file at path and renders it into a
// blob, converting it from the configured charset first.
func (h *Highlighter) HighlightFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	src, err = charsetx.Decode(h.Charset, src)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return h.Highlight(string(src), path), nil
}

// Highlight renders source text into a blob.
// filename guides language detection only; it is not read.
func (h *Highlighter) Highlight(src, filename string) string {
	h.init()

	tokens, err := chroma.Tokenise(h.lexer(src, filename), nil, src)
	if err != nil {
		// The fallback lexer accepts any input, so a failed
		// tokenise renders as unstyled text.
		tokens = []chroma.Token{{Type: chroma.None, Value: src}}
	}

	var sb strings.Builder
	sb.Grow(len(src) + len(src)/2)
	sb.WriteString(`<code class="chroma">`)
	sb.WriteString("<span")
	sb.WriteString(h.styleAttr(chroma.Background))
	sb.WriteString(">")
	for _, tok := range tokens {
		h.writeToken(&sb, tok)
	}
	sb.WriteString("</span></code>")
	return sb.String()
}

// writeToken writes one token, escaped, with newlines replaced by
// line break markers. A multi-line token keeps its single span around
// all of its lines; package excerpt reopens it per line.
func (h *Highlighter) writeToken(sb *strings.Builder, tok chroma.Token) {
	body := strings.ReplaceAll(html.EscapeString(tok.Value), "\n", excerpt.LineBreak)
	attr := h.styleAttr(tok.Type)
	if attr == "" {
		sb.WriteString(body)
		return
	}
	sb.WriteString("<span")
	sb.WriteString(attr)
	sb.WriteString(">")
	sb.WriteString(body)
	sb.WriteString("</span>")
}

// styleAttr returns the attribute, leading space included, that
// styles tokens of type tt, or an empty string if they render bare.
// Unknown types fall back to their subcategory, then category.
func (h *Highlighter) styleAttr(tt chroma.TokenType) string {
	for _, t := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if h.UseClasses {
			if cls, ok := chroma.StandardTypes[t]; ok {
				if cls == "" {
					return ""
				}
				return ` class="` + cls + `"`
			}
		} else if css, ok := h.css[t]; ok {
			return ` style="` + css + `"`
		}
	}
	return ""
}

func (h *Highlighter) lexer(src, filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		if h.DebugLog != nil {
			h.DebugLog.Printf("no lexer matches %v; highlighting as plain text", filename)
		}
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
