package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Help is the value of the -h/-help flag.
// Besides the plain form, it accepts a topic name,
// selecting a longer help text about that topic.
type Help string

// Topics that the rest of the program refers to by name.
const (
	NoHelp      Help = ""
	DefaultHelp Help = "default"
	UsageHelp   Help = "usage"
)

var (
	//go:embed help/default.txt
	_defaultHelp string

	//go:embed help/link.txt
	_linkHelp string

	//go:embed help/style.txt
	_styleHelp string

	//go:embed help/trace.txt
	_traceHelp string

	_helpTopics = map[Help]string{
		DefaultHelp: _defaultHelp,
		UsageHelp:   synopsis(_defaultHelp),
		"link":      _linkHelp,
		"style":     _styleHelp,
		"trace":     _traceHelp,
	}
)

// synopsis cuts the usage line off the top of the default help.
func synopsis(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx+1]
	}
	return s
}

var _ flag.Getter = (*Help)(nil)

// Set receives a command line value.
// The flag package reports a bare -h as "true".
func (h *Help) Set(s string) error {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "true" {
		s = string(DefaultHelp)
	}
	*h = Help(s)
	return nil
}

// Get returns the topic as given on the command line.
func (h *Help) Get() any { return *h }

// String returns the name of this topic.
func (h Help) String() string { return string(h) }

// IsBoolFlag allows -h without an argument.
func (*Help) IsBoolFlag() bool { return true }

// Write writes this topic's help text to the writer.
// Asking for a topic that doesn't exist is an error;
// NoHelp writes nothing.
func (h Help) Write(w io.Writer) error {
	if h == NoHelp {
		return nil
	}

	doc, ok := _helpTopics[h]
	if !ok {
		topics := make([]string, 0, len(_helpTopics))
		for t := range _helpTopics {
			topics = append(topics, string(t))
		}
		sort.Strings(topics)
		return fmt.Errorf("unknown help topic %q: valid values are %q", string(h), topics)
	}

	_, err := io.WriteString(w, doc)
	return err
}
