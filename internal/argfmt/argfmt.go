// Package argfmt models the argument lists recorded on stack trace
// frames and renders them as HTML or plain text.
//
// Arguments are descriptions, not live values: a producer records each
// argument as one of a small set of kinds, and this package turns that
// description back into something readable. The HTML form is a single
// line of inline markup; the text form is the same line with the
// markup stripped.
package argfmt

import "go.abhg.dev/trace2html/internal/sliceutil"

// Value is the recorded description of a single argument value.
//
// The following types implement this interface:
// [Object], [Array], [Raw], [Null], [Bool], [Resource], and [Scalar].
type Value interface{ value() }

var (
	_ Value = (*Object)(nil)
	_ Value = (*Array)(nil)
	_ Value = (*Raw)(nil)
	_ Value = (*Null)(nil)
	_ Value = (*Bool)(nil)
	_ Value = (*Resource)(nil)
	_ Value = (*Scalar)(nil)
)

// Object is a value of a named composite type, recorded by its
// fully-qualified name only.
type Object struct {
	// Class is the fully-qualified type name.
	Class string
}

func (*Object) value() {}

// Array is an ordered collection of nested values. Entries may carry
// names, in which case they render as key => value pairs.
type Array struct {
	Items []Arg
}

func (*Array) value() {}

// Raw is an array whose contents the producer already rendered to
// markup. The markup is emitted verbatim inside the array's
// parentheses.
type Raw struct {
	Markup string
}

func (*Raw) value() {}

// Null is the absence of a value.
type Null struct{}

func (*Null) value() {}

// Bool is a boolean value.
type Bool struct {
	Value bool
}

func (*Bool) value() {}

// Resource is a handle to an external facility, a file or connection
// or similar. Resources have no stable textual form, so only the kind
// is reported.
type Resource struct{}

func (*Resource) value() {}

// Scalar is any other value, rendered from its Go representation.
type Scalar struct {
	Value any
}

func (*Scalar) value() {}

// Arg is a single argument in a frame's argument list.
type Arg struct {
	// Name is the argument's key, if the producer recorded one.
	Name string

	// Named distinguishes an empty recorded name from a positional
	// argument.
	Named bool

	// Value describes the argument's value.
	Value Value
}

// Positional wraps values into an unnamed argument list.
func Positional(values ...Value) []Arg {
	return sliceutil.Transform(values, func(v Value) Arg {
		return Arg{Value: v}
	})
}
