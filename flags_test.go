package main

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.abhg.dev/trace2html/internal/highlight"
	"go.abhg.dev/trace2html/internal/iotest"
)

func TestCLIParser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want params
	}{
		{
			desc: "minimal",
			give: []string{"crash.json"},
			want: params{
				OutputDir: "_trace",
				Context:   3,
				Files:     []string{"crash.json"},
			},
		},
		{
			desc: "many arguments",
			give: []string{
				"-out", "build/report",
				"-debug=log.txt",
				"-embed",
				"-context", "5",
				"-charset", "latin1",
				"-src-root", "/srv/app",
				"-editor", "vscode",
				"a.json",
				"b.json",
			},
			want: params{
				OutputDir:  "build/report",
				Debug:      "log.txt",
				Embed:      true,
				Context:    5,
				Charset:    "latin1",
				SourceRoot: "/srv/app",
				Editor:     "vscode",
				Files:      []string{"a.json", "b.json"},
			},
		},
		{
			desc: "whole files",
			give: []string{"-context=-1", "crash.json"},
			want: params{
				OutputDir: "_trace",
				Context:   -1,
				Files:     []string{"crash.json"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := (&cliParser{
				Stdout: iotest.Writer(t),
				Stderr: iotest.Writer(t),
			}).Parse(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("link templates", func(t *testing.T) {
		t.Parallel()

		got, err := (&cliParser{
			Stdout: iotest.Writer(t),
			Stderr: iotest.Writer(t),
		}).Parse([]string{
			"-link", "/srv/app=https://example.com/src/{{.Path}}#L{{.Line}}",
			"-link=/usr/lib=https://pkgs.example.com/{{.Path}}",
			"crash.json",
		})
		require.NoError(t, err)

		tmpls := got.Links
		require.Len(t, tmpls, 2)

		assert.Equal(t, "/srv/app", tmpls[0].Path)
		assert.Equal(t,
			"https://example.com/src/{{.Path}}#L{{.Line}}", tmpls[0].rawTmpl)

		assert.Equal(t, "/usr/lib", tmpls[1].Path)
		assert.Equal(t,
			"https://pkgs.example.com/{{.Path}}", tmpls[1].rawTmpl)
	})

	t.Run("style", func(t *testing.T) {
		t.Parallel()

		got, err := (&cliParser{
			Stdout: iotest.Writer(t),
			Stderr: iotest.Writer(t),
		}).Parse([]string{"-style", "classes:github", "crash.json"})
		require.NoError(t, err)

		assert.True(t, got.Style.Classes)
		require.NotNil(t, got.Style.Style)
		assert.Equal(t, "github", got.Style.Style.Name)
	})
}

func TestCLIParser_env(t *testing.T) {
	t.Setenv("TRACE2HTML_OUT", "env/report")
	t.Setenv("TRACE2HTML_CONTEXT", "7")

	t.Run("env only", func(t *testing.T) {
		got, err := (&cliParser{
			Stdout: iotest.Writer(t),
			Stderr: iotest.Writer(t),
		}).Parse([]string{"crash.json"})
		require.NoError(t, err)

		assert.Equal(t, "env/report", got.OutputDir)
		assert.Equal(t, 7, got.Context)
	})

	t.Run("flag wins", func(t *testing.T) {
		got, err := (&cliParser{
			Stdout: iotest.Writer(t),
			Stderr: iotest.Writer(t),
		}).Parse([]string{"-out", "flag/report", "crash.json"})
		require.NoError(t, err)

		assert.Equal(t, "flag/report", got.OutputDir)
		assert.Equal(t, 7, got.Context)
	})
}

func TestCLIParser_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want string // expected messages
	}{
		{
			desc: "no files",
			want: "Please provide at least one trace file",
		},
		{
			desc: "unrecognized",
			give: []string{"-foo=bar", "crash.json"},
			want: "flag provided but not defined: -foo",
		},
		{
			desc: "bad style",
			give: []string{"-style", "no-such-style", "crash.json"},
			want: `unknown style "no-such-style"`,
		},
		{
			desc: "bad style mode",
			give: []string{"-style", "shiny:github", "crash.json"},
			want: `unknown style mode "shiny"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			_, err := (&cliParser{
				Stdout: iotest.Writer(t),
				Stderr: &stderr,
			}).Parse(tt.give)
			require.Error(t, err)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestCLIParser_helpTopic(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	_, err := (&cliParser{
		Stdout: iotest.Writer(t),
		Stderr: &stderr,
	}).Parse([]string{"-h", "link"})
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr.String(), "-editor NAME")
}

func TestStyleFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc        string
		give        string
		wantName    string
		wantClasses bool
	}{
		{
			desc:     "name only",
			give:     "github",
			wantName: "github",
		},
		{
			desc:        "classes mode",
			give:        "classes:github",
			wantName:    "github",
			wantClasses: true,
		},
		{
			desc:     "inline mode",
			give:     "inline:github",
			wantName: "github",
		},
		{
			desc:        "classes with default style",
			give:        "classes:",
			wantName:    "plain",
			wantClasses: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
			fset.SetOutput(iotest.Writer(t))

			var sf styleFlag
			fset.Var(&sf, "x", "")
			require.NoError(t, fset.Parse([]string{"-x", tt.give}))

			require.NotNil(t, sf.Style)
			assert.Equal(t, tt.wantName, sf.Style.Name)
			assert.Equal(t, tt.wantClasses, sf.Classes)
			assert.Equal(t, tt.give, sf.String())
			assert.NotNil(t, sf.Get(), "Get")
		})
	}
}

func TestStyleFlag_default(t *testing.T) {
	t.Parallel()

	var sf styleFlag
	assert.Nil(t, sf.Style)
	assert.Empty(t, sf.String())

	h := highlight.Highlighter{Style: sf.Style}
	assert.NotPanics(t, func() {
		h.Highlight("x = 1", "x.py")
	})
}

func TestPathTemplate(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(iotest.Writer(t))

	var pt pathTemplate
	fset.Var(&pt, "x", "")
	require.NoError(t, fset.Parse([]string{
		"-x", "foo=bar",
	}))

	assert.Equal(t, "foo", pt.Path)
	assert.Equal(t, "bar", pt.rawTmpl)
	assert.NotNil(t, pt.Template)

	assert.NotNil(t, pt.Get(), "Get")
	assert.Equal(t, "foo=bar", pt.String())
}

func TestPathTemplate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want string // expected error
	}{
		{
			desc: "no '='",
			give: "foo",
			want: "expected form 'path=template'",
		},
		{
			desc: "invalid template",
			give: "foo=bar{{.baz",
			want: "bad template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
			fset.SetOutput(iotest.Writer(t))

			fset.Var(new(pathTemplate), "x", "")
			err := fset.Parse([]string{"-x", tt.give})
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
