package highlight

import (
	"braces.dev/errtrace"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal syntax highlighting style for Chroma.
// It leaves most text as-is, and fades comments ever so slightly.
var PlainStyle = chroma.MustNewStyle("plain", map[chroma.TokenType]string{
	chroma.Comment:    "#666666",
	chroma.PreWrapper: "bg:#eeeeee",
	chroma.Background: "bg:#eeeeee",
})

func init() {
	styles.Register(PlainStyle)
}

// Lookup finds a registered style by name.
// An empty name means [PlainStyle].
func Lookup(name string) (*chroma.Style, error) {
	if name == "" {
		return PlainStyle, nil
	}
	if sty, ok := styles.Registry[name]; ok {
		return sty, nil
	}
	return nil, errtrace.Errorf("unknown style %q", name)
}

// StyleNames lists the names of all registered styles.
func StyleNames() []string {
	return styles.Names()
}
