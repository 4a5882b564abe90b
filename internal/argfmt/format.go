package argfmt

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"

	"go.abhg.dev/trace2html/internal/charsetx"
)

// maxDepth bounds how deep nested arrays render. Anything deeper
// shows an ellipsis instead of its contents.
const maxDepth = 20

// Formatter renders argument lists. The zero value is a valid
// formatter for UTF-8 input.
type Formatter struct {
	// Charset names the character set that argument names and scalar
	// strings were recorded in. They are converted to UTF-8 before
	// escaping. Empty means UTF-8.
	Charset string
}

// FormatHTML renders args as one line of inline HTML. Values render
// by kind: composites as "<em>kind</em>(...)", null, booleans, and
// resources as emphasized words, and scalars as escaped literals.
// Named arguments render as 'name' => value pairs. Arguments are
// separated by ", ".
func (f *Formatter) FormatHTML(args []Arg) string {
	var sb strings.Builder
	f.writeArgs(&sb, args, 0)
	return sb.String()
}

// FormatText renders args as plain text: the HTML form with its tags
// stripped. Entities and everything else survive unchanged.
func (f *Formatter) FormatText(args []Arg) string {
	return StripTags(f.FormatHTML(args))
}

func (f *Formatter) writeArgs(sb *strings.Builder, args []Arg, depth int) {
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if arg.Named {
			sb.WriteString("'")
			sb.WriteString(f.escape(arg.Name))
			sb.WriteString("' => ")
		}
		f.writeValue(sb, arg.Value, depth)
	}
}

func (f *Formatter) writeValue(sb *strings.Builder, v Value, depth int) {
	switch v := v.(type) {
	case *Object:
		sb.WriteString("<em>object</em>(")
		sb.WriteString(AbbrClass(v.Class))
		sb.WriteString(")")
	case *Array:
		sb.WriteString("<em>array</em>(")
		if depth >= maxDepth {
			sb.WriteString("&hellip;")
		} else {
			f.writeArgs(sb, v.Items, depth+1)
		}
		sb.WriteString(")")
	case *Raw:
		sb.WriteString("<em>array</em>(")
		sb.WriteString(v.Markup)
		sb.WriteString(")")
	case *Null, nil:
		sb.WriteString("<em>null</em>")
	case *Bool:
		fmt.Fprintf(sb, "<em>%t</em>", v.Value)
	case *Resource:
		sb.WriteString("<em>resource</em>")
	case *Scalar:
		value := v.Value
		if s, ok := value.(string); ok {
			// Recorded text converts to UTF-8 before quoting so
			// that foreign bytes don't turn into hex escapes.
			value = charsetx.DecodeString(f.Charset, s)
		}
		sb.WriteString(html.EscapeString(exportString(value)))
	default:
		panic(fmt.Sprintf("unrecognized value type %T", v))
	}
}

// escape converts s from the formatter's character set and escapes it
// for HTML.
func (f *Formatter) escape(s string) string {
	return html.EscapeString(charsetx.DecodeString(f.Charset, s))
}

// AbbrClass renders a fully-qualified type name as its short name,
// with the full name available as a tooltip.
func AbbrClass(class string) string {
	return fmt.Sprintf("<abbr title=\"%s\">%s</abbr>",
		html.EscapeString(class), html.EscapeString(ShortName(class)))
}

// AbbrFunc renders a fully-qualified function name as a short,
// tooltipped call form.
func AbbrFunc(fn string) string {
	if fn == "" {
		return ""
	}
	return AbbrClass(fn) + "()"
}

// ShortName returns the last segment of a qualified type or function
// name. Qualifiers split on "::", "\", "/", and ".", so names from
// most source languages shorten sensibly.
func ShortName(qualified string) string {
	short := qualified
	if i := strings.LastIndex(short, "::"); i >= 0 {
		short = short[i+2:]
	}
	for _, sep := range []byte{'\\', '/', '.'} {
		if i := strings.LastIndexByte(short, sep); i >= 0 {
			short = short[i+1:]
		}
	}
	return short
}

// StripTags removes markup tags from a rendered HTML line, leaving
// text and entities untouched.
func StripTags(s string) string {
	z := xhtml.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			// io.EOF or a malformed tail. Keep what we have.
			return sb.String()
		case xhtml.TextToken:
			sb.Write(z.Raw())
		}
	}
}

var _newlines = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// exportString renders a scalar the way Go source would spell it,
// collapsed to a single line.
func exportString(v any) string {
	var s string
	switch v := v.(type) {
	case nil:
		s = "null"
	case string:
		s = strconv.Quote(v)
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		s = fmt.Sprintf("%#v", v)
	}
	return _newlines.Replace(s)
}
