package highlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.abhg.dev/trace2html/internal/excerpt"
)

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("wrapper shape", func(t *testing.T) {
		t.Parallel()

		h := Highlighter{UseClasses: true}
		got := h.Highlight("package main\n", "main.go")

		assert.True(t,
			strings.HasPrefix(got, `<code class="chroma"><span class="bg">`),
			"wrong prefix:\n%v", got)
		assert.True(t,
			strings.HasSuffix(got, "</span></code>"),
			"wrong suffix:\n%v", got)
	})

	t.Run("newlines become markers", func(t *testing.T) {
		t.Parallel()

		h := Highlighter{UseClasses: true}
		got := h.Highlight("a\nb\nc\n", "notes.txt")

		assert.Equal(t, 3, strings.Count(got, excerpt.LineBreak))
		assert.NotContains(t, got, "\n")
	})

	t.Run("text escaped", func(t *testing.T) {
		t.Parallel()

		h := Highlighter{UseClasses: true}
		got := h.Highlight("a < b && c\n", "notes.txt")

		assert.Contains(t, got, "a &lt; b &amp;&amp; c")
	})

	t.Run("classes", func(t *testing.T) {
		t.Parallel()

		h := Highlighter{UseClasses: true}
		got := h.Highlight("// foo\n", "main.go")

		assert.Contains(t, got, `<span class="c`)
		assert.Contains(t, got, "// foo")
	})

	t.Run("inline styles", func(t *testing.T) {
		t.Parallel()

		h := Highlighter{} // PlainStyle, inline
		got := h.Highlight("// foo\n", "main.go")

		assert.True(t,
			strings.HasPrefix(got,
				`<code class="chroma"><span style="background-color: #eeeeee">`),
			"wrong prefix:\n%v", got)
		assert.Contains(t, got, `style="color: #666666"`)
		assert.NotContains(t, got, `<span class=`)
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		h := Highlighter{UseClasses: true}
		got := h.Highlight("whatever this is\n", "mystery.zzz")

		assert.Contains(t, got, "whatever this is")
	})
}

// A token that covers several lines must keep its styling on every
// line once the blob is reflowed.
func TestHighlighter_Highlight_reflow(t *testing.T) {
	t.Parallel()

	src := "func add(a, b int) int {\n\t/* sum\n\tof two */\n\treturn a + b\n}\n"
	h := Highlighter{UseClasses: true}
	blob := h.Highlight(src, "add.go")

	frags := excerpt.Reflow(blob, 2, -1)
	require.Len(t, frags, strings.Count(src, "\n")+1)

	for _, frag := range frags {
		opens := strings.Count(frag.Markup, "<span")
		closes := strings.Count(frag.Markup, "</span>")
		assert.Equal(t, opens, closes, "unbalanced line %d: %q", frag.Line, frag.Markup)
	}

	// The comment starts on line 2 and ends on line 3;
	// both lines carry its span.
	assert.Contains(t, frags[1].Markup, `<span class="c`)
	assert.Contains(t, frags[1].Markup, "/* sum")
	assert.Contains(t, frags[2].Markup, `<span class="c`)
	assert.Contains(t, frags[2].Markup, "of two */")
}

func TestHighlighter_HighlightFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.go")
	require.NoError(t,
		os.WriteFile(path, []byte("package main\n\nvar x = 42\n"), 0o644))

	h := Highlighter{UseClasses: true}
	got, err := h.HighlightFile(path)
	require.NoError(t, err)

	// Class mode wraps each token in its own span.
	assert.Contains(t, got, ">package</span>")
	assert.Contains(t, got, ">main</span>")
	assert.Equal(t, 3, strings.Count(got, excerpt.LineBreak))
}

func TestHighlighter_HighlightFile_charset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t,
		os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9, '\n'}, 0o644))

	h := Highlighter{UseClasses: true, Charset: "latin1"}
	got, err := h.HighlightFile(path)
	require.NoError(t, err)

	assert.Contains(t, got, "café")
}

func TestHighlighter_HighlightFile_missing(t *testing.T) {
	t.Parallel()

	h := Highlighter{UseClasses: true}
	_, err := h.HighlightFile(filepath.Join(t.TempDir(), "nope.go"))
	assert.Error(t, err)
}

func TestHighlighter_WriteCSS(t *testing.T) {
	t.Parallel()

	t.Run("classes", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		h := Highlighter{UseClasses: true}
		require.NoError(t, h.WriteCSS(&sb))

		assert.Contains(t, sb.String(), ".bg")
		assert.Contains(t, sb.String(), "#eeeeee")
	})

	t.Run("inline is a no-op", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		h := Highlighter{}
		require.NoError(t, h.WriteCSS(&sb))
		assert.Empty(t, sb.String())
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("empty means plain", func(t *testing.T) {
		t.Parallel()

		sty, err := Lookup("")
		require.NoError(t, err)
		assert.Same(t, PlainStyle, sty)
	})

	t.Run("registered", func(t *testing.T) {
		t.Parallel()

		sty, err := Lookup("plain")
		require.NoError(t, err)
		assert.Same(t, PlainStyle, sty)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		_, err := Lookup("no-such-style")
		assert.ErrorContains(t, err, `unknown style "no-such-style"`)
	})
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	assert.Contains(t, StyleNames(), "plain")
}
