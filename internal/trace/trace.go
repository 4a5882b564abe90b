// Package trace models recorded failures: an error's identity and the
// stack of frames that produced it, with whatever argument values the
// producer captured along the way.
//
// Traces are deliberately flat and language-agnostic. Anything that
// can name a type, a function, and a file position can produce one;
// rendering never needs the program that failed.
package trace

import (
	"go.abhg.dev/trace2html/internal/argfmt"
)

// Trace is a recorded failure.
type Trace struct {
	// Class is the fully-qualified name of the failure's type.
	Class string

	// Message is the human-readable description of the failure.
	Message string

	// Frames is the call stack, innermost frame first.
	Frames []Frame
}

// Frame is one entry of a recorded call stack.
type Frame struct {
	// File is the path of the source file, if known.
	// It need not exist on the machine rendering the trace.
	File string

	// Line is the 1-indexed line within File.
	Line int

	// Func is the fully-qualified name of the function executing in
	// this frame.
	Func string

	// Args are the argument values the producer recorded,
	// in call order.
	Args []argfmt.Arg
}
