package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/peterbourgon/ff/v3"

	"go.abhg.dev/trace2html/internal/flagvalue"
	"go.abhg.dev/trace2html/internal/highlight"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for trace2html.
type params struct {
	version bool
	help    Help

	Debug flagvalue.FileSwitch

	OutputDir string

	Embed      bool
	Context    int
	Charset    string
	Style      styleFlag
	SourceRoot string

	Editor string
	Links  []pathTemplate

	Files []string
}

// cliParser parses the command line arguments for trace2html.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("trace2html", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_trace", "")

	// HTML output:
	flag.BoolVar(&p.Embed, "embed", false, "")
	flag.IntVar(&p.Context, "context", 3, "")
	flag.StringVar(&p.Charset, "charset", "", "")
	flag.Var(&p.Style, "style", "")
	flag.StringVar(&p.SourceRoot, "src-root", "", "")

	// Source links:
	flag.StringVar(&p.Editor, "editor", "", "")
	flag.Var(flagvalue.ListOf(&p.Links), "link", "")

	// Program-level:
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	if err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix("TRACE2HTML"),
	); err != nil {
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "trace2html", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Files = args
	if len(p.Files) == 0 {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one trace file.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// styleFlag is the -style flag. It accepts values of the form
// [MODE:]NAME where MODE specifies whether the style is applied
// with inline attributes or shared CSS classes.
type styleFlag struct {
	Style   *chroma.Style
	Classes bool

	raw string
}

var _ flag.Getter = (*styleFlag)(nil)

func (sf *styleFlag) Get() any { return sf }

func (sf *styleFlag) String() string { return sf.raw }

func (sf *styleFlag) Set(s string) error {
	raw := s

	var classes bool
	if mode, rest, ok := strings.Cut(s, ":"); ok {
		switch mode {
		case "classes":
			classes = true
		case "inline":
			// default
		default:
			return fmt.Errorf(
				"unknown style mode %q: valid values are 'classes' and 'inline'", mode)
		}
		s = rest
	}

	style, err := highlight.Lookup(s)
	if err != nil {
		return err
	}

	sf.Style, sf.Classes, sf.raw = style, classes, raw
	return nil
}

// pathTemplate is a key-value pair
// defining the link template to use for a path.
type pathTemplate struct {
	Path     string
	Template *template.Template

	rawTmpl string
}

var _ flag.Getter = (*pathTemplate)(nil)

func (pt *pathTemplate) Get() any { return pt }

func (pt *pathTemplate) String() string {
	return fmt.Sprintf("%s=%s", pt.Path, pt.rawTmpl)
}

func (pt *pathTemplate) Set(s string) error {
	idx := strings.IndexRune(s, '=')
	if idx < 0 {
		return fmt.Errorf("expected form 'path=template'")
	}

	path, raw := s[:idx], s[idx+1:]
	tmpl, err := template.New(path).Parse(raw)
	if err != nil {
		return fmt.Errorf("bad template: %w", err)
	}

	pt.Path = path
	pt.Template = tmpl
	pt.rawTmpl = raw
	return nil
}
