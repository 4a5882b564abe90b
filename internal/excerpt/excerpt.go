// Package excerpt restructures highlighted source blobs into per-line
// fragments fit for line-oriented display.
//
// A blob is the HTML a source highlighter produces for a whole file:
// the file wrapped in a single <code><span> container, source lines
// separated by [LineBreak] markers instead of newlines, and styling
// spans that may run across markers when a token covers several lines.
// Reflow slices such a blob into lines whose markup stands alone, so
// that callers can wrap each line in its own list item.
package excerpt

import (
	"log"
	"os"
	"strings"
)

// LineBreak is the in-band marker that separates source lines inside a
// highlighted blob. Highlighters emit it in place of newline
// characters.
const LineBreak = "<br />"

// Fragment is one line of a highlighted excerpt. Its markup is
// balanced on its own: every span opened on the line is closed on the
// same line.
type Fragment struct {
	// Line is the 1-indexed line number in the source file.
	Line int

	// Selected reports whether this is the line the excerpt was
	// requested for.
	Selected bool

	// Markup is the highlighted HTML for this line,
	// with surrounding whitespace trimmed.
	Markup string
}

// Highlighter renders a source file into a highlighted blob.
type Highlighter interface {
	HighlightFile(path string) (string, error)
}

// Excerpter extracts highlighted excerpts from source files.
type Excerpter struct {
	// Highlighter renders the files.
	Highlighter Highlighter

	// DebugLog, if set, reports files that could not be highlighted.
	DebugLog *log.Logger
}

// File excerpts the source file at path around the given 1-indexed
// line. It returns nil if path is not a readable regular file or could
// not be highlighted. A missing file is a normal outcome, not an
// error: traces routinely point at sources that are absent from the
// machine rendering them.
func (e *Excerpter) File(path string, line, radius int) []Fragment {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}

	blob, err := e.Highlighter.HighlightFile(path)
	if err != nil {
		if e.DebugLog != nil {
			e.DebugLog.Printf("cannot highlight %v: %v", path, err)
		}
		return nil
	}

	return Reflow(blob, line, radius)
}

// Reflow slices a highlighted blob into per-line fragments covering
// the window of radius lines around the given 1-indexed line, clamped
// to the blob's bounds. A negative radius covers the whole blob.
//
// Spans that the highlighter left running across line breaks are
// reopened with the same attributes on every line they cover, and each
// line is rebalanced so that it parses on its own.
func Reflow(blob string, line, radius int) []Fragment {
	lines := SplitLines(stripWrapper(blob))

	lo, hi := line-radius, line+radius
	if radius < 0 {
		lo, hi = 1, len(lines)
	}
	lo = max(lo, 1)
	hi = min(hi, len(lines))
	if hi < lo {
		return nil
	}

	frags := make([]Fragment, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		frags = append(frags, Fragment{
			Line:     n,
			Selected: n == line,
			Markup:   balanceLine(lines[n-1]),
		})
	}
	return frags
}

// SplitLines splits a blob on LineBreak markers. A span still open
// when a marker is reached is reopened with the same attributes at the
// start of every following line it covers, so no line depends on a
// span opened before it. Reopened spans are left unclosed;
// balanceLine closes them.
func SplitLines(blob string) []string {
	lines := strings.Split(blob, LineBreak)

	// Attributes of the span left open by the previous line,
	// as a complete opening tag.
	open := ""
	for i, line := range lines {
		if open != "" {
			line = open + line
			lines[i] = line
		}
		open = danglingSpan(line)
	}
	return lines
}

// stripWrapper removes the <code><span> container that highlighters
// wrap whole files in. Blobs without that exact shape are returned
// unchanged.
func stripWrapper(blob string) string {
	s := strings.TrimSpace(blob)

	s, ok := cutOpenTag(s, "code")
	if !ok {
		return blob
	}
	s, ok = cutOpenTag(strings.TrimLeft(s, " \t\r\n"), "span")
	if !ok {
		return blob
	}

	s, ok = strings.CutSuffix(s, "</code>")
	if !ok {
		return blob
	}
	s, ok = strings.CutSuffix(strings.TrimRight(s, " \t\r\n"), "</span>")
	if !ok {
		return blob
	}
	return s
}

// cutOpenTag strips a leading "<name ...>" tag off s.
func cutOpenTag(s, name string) (rest string, ok bool) {
	tag := "<" + name
	if !strings.HasPrefix(s, tag) {
		return s, false
	}
	if len(s) == len(tag) {
		return s, false
	}
	if c := s[len(tag)]; c != '>' && c != ' ' && c != '\t' {
		return s, false
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return s, false
	}
	return s[end+1:], true
}

// balanceLine makes one line's markup self-contained. A closing tag
// whose span was opened on an earlier line is dropped, and a span
// still open at the end of the line is closed. Surrounding whitespace
// is trimmed.
//
// Only one span transition per line break is repaired. If several
// nested spans cross the same break, one tag per line stays
// unmatched; highlighters that never nest styling spans, including
// this module's own, cannot produce that shape.
func balanceLine(line string) string {
	// A close that precedes every open on the line belongs to a span
	// that a previous line already closed.
	if closing := strings.Index(line, "</span>"); closing >= 0 {
		opening := firstSpanOpen(line)
		if opening < 0 || closing < opening {
			line = line[:closing] + line[closing+len("</span>"):]
		}
	}

	// A span still open at the end of the line gets its close here.
	if opening := lastSpanOpen(line); opening >= 0 {
		if strings.LastIndex(line, "</span>") < opening {
			line += "</span>"
		}
	}

	return strings.TrimSpace(line)
}

// danglingSpan returns the complete opening tag of the span left open
// at the end of line, or an empty string if every span is closed.
func danglingSpan(line string) string {
	open := lastSpanOpen(line)
	if open < 0 {
		return ""
	}
	if strings.LastIndex(line, "</span>") > open {
		return ""
	}
	end := strings.IndexByte(line[open:], '>')
	if end < 0 {
		return ""
	}
	return line[open : open+end+1]
}

// firstSpanOpen returns the index of the first span opening tag in s,
// or -1 if there is none.
func firstSpanOpen(s string) int {
	for i := 0; ; {
		j := strings.Index(s[i:], "<span")
		if j < 0 {
			return -1
		}
		j += i
		if isSpanTagAt(s, j) {
			return j
		}
		i = j + 1
	}
}

// lastSpanOpen returns the index of the last span opening tag in s,
// or -1 if there is none.
func lastSpanOpen(s string) int {
	for i := len(s); ; {
		j := strings.LastIndex(s[:i], "<span")
		if j < 0 {
			return -1
		}
		if isSpanTagAt(s, j) {
			return j
		}
		i = j
	}
}

// isSpanTagAt reports whether the "<span" at index j in s starts a
// span tag rather than a longer name.
func isSpanTagAt(s string, j int) bool {
	k := j + len("<span")
	if k >= len(s) {
		return false
	}
	switch s[k] {
	case '>', ' ', '\t':
		return true
	}
	return false
}
