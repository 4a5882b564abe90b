package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"

	"go.abhg.dev/trace2html/internal/argfmt"
	"go.abhg.dev/trace2html/internal/excerpt"
	"go.abhg.dev/trace2html/internal/filelink"
	"go.abhg.dev/trace2html/internal/highlight"
	"go.abhg.dev/trace2html/internal/html"
	"go.abhg.dev/trace2html/internal/trace"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("trace2html: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() {
		err = errors.Join(err, closeDebug())
	}()
	debugLog := log.New(debugw, "", 0)

	linker, err := newLinker(opts)
	if err != nil {
		return err
	}

	highlighter := highlight.Highlighter{
		Style:      opts.Style.Style,
		UseClasses: opts.Style.Classes,
		Charset:    opts.Charset,
		DebugLog:   debugLog,
	}

	generator := Generator{
		Log:    cmd.log,
		Loader: new(trace.FileLoader),
		Renderer: &html.Renderer{
			Embedded:    opts.Embed,
			Highlighter: &highlighter,
			Excerpter: &excerpt.Excerpter{
				Highlighter: &highlighter,
				DebugLog:    debugLog,
			},
			Linker:     linker,
			Args:       &argfmt.Formatter{Charset: opts.Charset},
			SourceRoot: opts.SourceRoot,
			Context:    opts.Context,
		},
		OutDir: opts.OutputDir,
	}

	return errtrace.Wrap(generator.Generate(opts.Files))
}

// newLinker assembles the frame location linker
// from the -editor and -link flags.
func newLinker(opts *params) (filelink.Formatter, error) {
	if opts.Editor == "" && len(opts.Links) == 0 {
		return filelink.None{}, nil
	}

	linker := new(filelink.Templates)
	if opts.Editor != "" {
		tmpl, ok := filelink.Editor(opts.Editor)
		if !ok {
			return nil, errtrace.Errorf("unknown editor %q: valid values are %q",
				opts.Editor, filelink.Editors())
		}
		linker.SetFallback(tmpl)
	}
	for _, lt := range opts.Links {
		linker.Set(lt.Path, lt.Template)
	}
	return linker, nil
}
