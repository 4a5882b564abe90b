package filelink

import (
	"sort"
	"strings"
	"text/template"

	"go.abhg.dev/trace2html/internal/must"
)

// editors are the built-in link templates, keyed by editor name.
// Each renders a URL that opens the file at the right line.
var editors = map[string]string{
	"emacs":    "emacs://open?url=file://{{.Path}}&line={{.Line}}",
	"goland":   "goland://open?file={{.Path}}&line={{.Line}}",
	"idea":     "idea://open?file={{.Path}}&line={{.Line}}",
	"macvim":   "mvim://open?url=file://{{.Path}}&line={{.Line}}",
	"phpstorm": "phpstorm://open?file={{.Path}}&line={{.Line}}",
	"sublime":  "subl://open?url=file://{{.Path}}&line={{.Line}}",
	"textmate": "txmt://open?url=file://{{.Path}}&line={{.Line}}",
	"vscode":   "vscode://file/{{.Path}}:{{.Line}}",
	"vscodium": "vscodium://file/{{.Path}}:{{.Line}}",
	"zed":      "zed://file/{{.Path}}:{{.Line}}",
}

// Editor returns the built-in link template for an editor,
// or false if the name is unknown. Use [Editors] for known names.
func Editor(name string) (*template.Template, bool) {
	text, ok := editors[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	t, err := template.New(name).Parse(text)
	must.NotErrorf(err, "editor %q has a bad link template", name)
	return t, true
}

// Editors lists the editors Editor knows, sorted by name.
func Editors() []string {
	names := make([]string, 0, len(editors))
	for name := range editors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
