package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"braces.dev/errtrace"

	"go.abhg.dev/trace2html/internal/argfmt"
	"go.abhg.dev/trace2html/internal/ptr"
	"go.abhg.dev/trace2html/internal/sliceutil"
)

// maxFrames caps how much of the stack Capture records.
const maxFrames = 64

// Capture records the current call stack as a trace describing err.
// skip is the number of callers to leave out, not counting Capture
// itself: 0 starts the trace at Capture's caller.
// Frames belonging to the runtime itself are not recorded.
//
// Frame arguments are not recoverable from a running Go program;
// callers that have them use [argfmt.Capture] and attach them to the
// frames they belong to.
func Capture(err error, skip int) *Trace {
	var t Trace
	if err != nil {
		t.Class = strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
		t.Message = err.Error()
	}

	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return &t
	}

	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		t.Frames = append(t.Frames, Frame{
			File: frame.File,
			Line: frame.Line,
			Func: frame.Function,
		})
		if !more {
			break
		}
	}

	// Drop the runtime's own frames from the stack.
	t.Frames = sliceutil.RemoveFunc(t.Frames, func(f Frame) bool {
		return strings.HasPrefix(f.Func, "runtime.")
	})
	return &t
}

// Encode writes t to w in the JSON form that [Decode] reads.
func Encode(w io.Writer, t *Trace) error {
	wt := wireTrace{
		Class:   t.Class,
		Message: t.Message,
		Frames:  make([]wireFrame, len(t.Frames)),
	}
	for i, frame := range t.Frames {
		wf := wireFrame{
			File: frame.File,
			Line: frame.Line,
			Func: frame.Func,
		}
		for _, arg := range frame.Args {
			wa, err := encodeArg(arg)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			wf.Args = append(wf.Args, wa)
		}
		wt.Frames[i] = wf
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return errtrace.Wrap(enc.Encode(&wt))
}

func encodeArg(arg argfmt.Arg) (wireArg, error) {
	var w wireArg
	if arg.Named {
		w.Name = ptr.Of(arg.Name)
	}

	var (
		value any
		err   error
	)
	switch v := arg.Value.(type) {
	case *argfmt.Object:
		w.Kind, value = "object", v.Class
	case *argfmt.Array:
		w.Kind = "array"
		entries := make([]wireArg, len(v.Items))
		for i, item := range v.Items {
			entries[i], err = encodeArg(item)
			if err != nil {
				return w, fmt.Errorf("entry %d: %w", i, err)
			}
		}
		value = entries
	case *argfmt.Raw:
		w.Kind, value = "array", v.Markup
	case *argfmt.Null, nil:
		w.Kind = "null"
		return w, nil
	case *argfmt.Bool:
		w.Kind, value = "boolean", v.Value
	case *argfmt.Resource:
		w.Kind = "resource"
		return w, nil
	case *argfmt.Scalar:
		w.Kind, value = "scalar", v.Value
	default:
		return w, errtrace.Errorf("unrecognized value type %T", v)
	}

	raw, err := marshalRaw(value)
	if err != nil {
		return w, err
	}
	w.Value = raw
	return w, nil
}

// marshalRaw marshals v with HTML escaping off. json.Marshal would
// bake < escapes into the raw message before the outer encoder's
// own SetEscapeHTML(false) could apply.
func marshalRaw(v any) (json.RawMessage, error) {
	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return bytes.TrimRight(buff.Bytes(), "\n"), nil
}
