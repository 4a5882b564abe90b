package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"braces.dev/errtrace"

	"go.abhg.dev/trace2html/internal/argfmt"
	"go.abhg.dev/trace2html/internal/errdefer"
)

// Wire format of a recorded trace:
//
//	{
//	  "class": "...", "message": "...",
//	  "frames": [
//	    {
//	      "file": "...", "line": 1, "func": "...",
//	      "args": [{"name": "...", "kind": "...", "value": ...}, ...]
//	    },
//	    ...
//	  ]
//	}
//
// Argument kinds are "object", "array", "null", "boolean", "resource",
// and "scalar". Values carry what the kind needs: a type name for
// objects, nested argument entries or pre-rendered markup for arrays,
// a literal otherwise. Unrecognized kinds degrade to scalars rather
// than failing the whole trace.
type (
	wireTrace struct {
		Class   string      `json:"class"`
		Message string      `json:"message"`
		Frames  []wireFrame `json:"frames"`
	}

	wireFrame struct {
		File string    `json:"file"`
		Line int       `json:"line"`
		Func string    `json:"func"`
		Args []wireArg `json:"args"`
	}

	wireArg struct {
		Name  *string         `json:"name,omitempty"`
		Kind  string          `json:"kind"`
		Value json.RawMessage `json:"value,omitempty"`
	}
)

// FileLoader loads recorded traces from JSON files on disk.
type FileLoader struct{}

// LoadTrace reads and decodes the trace recorded at path.
func (*FileLoader) LoadTrace(path string) (_ *Trace, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %v: %w", path, err)
	}
	return t, nil
}

// Decode reads one JSON-encoded trace from r.
func Decode(r io.Reader) (*Trace, error) {
	var w wireTrace
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return nil, errtrace.Wrap(err)
	}

	t := Trace{
		Class:   w.Class,
		Message: w.Message,
		Frames:  make([]Frame, len(w.Frames)),
	}
	for i, wf := range w.Frames {
		frame, err := decodeFrame(wf)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		t.Frames[i] = frame
	}
	return &t, nil
}

func decodeFrame(w wireFrame) (Frame, error) {
	frame := Frame{
		File: w.File,
		Line: w.Line,
		Func: w.Func,
	}
	if len(w.Args) > 0 {
		frame.Args = make([]argfmt.Arg, len(w.Args))
		for i, wa := range w.Args {
			arg, err := decodeArg(wa)
			if err != nil {
				return frame, fmt.Errorf("arg %d: %w", i, err)
			}
			frame.Args[i] = arg
		}
	}
	return frame, nil
}

func decodeArg(w wireArg) (argfmt.Arg, error) {
	value, err := decodeValue(w.Kind, w.Value)
	if err != nil {
		return argfmt.Arg{}, err
	}

	arg := argfmt.Arg{Value: value}
	if w.Name != nil {
		arg.Name, arg.Named = *w.Name, true
	}
	return arg, nil
}

func decodeValue(kind string, raw json.RawMessage) (argfmt.Value, error) {
	switch kind {
	case "object":
		var class string
		if err := json.Unmarshal(raw, &class); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("object class: %w", err))
		}
		return &argfmt.Object{Class: class}, nil

	case "array":
		// Arrays hold either nested entries
		// or markup already rendered by the producer.
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
			var markup string
			if err := json.Unmarshal(raw, &markup); err != nil {
				return nil, errtrace.Wrap(err)
			}
			return &argfmt.Raw{Markup: markup}, nil
		}

		var entries []wireArg
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("array entries: %w", err))
		}
		items := make([]argfmt.Arg, len(entries))
		for i, e := range entries {
			item, err := decodeArg(e)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			items[i] = item
		}
		return &argfmt.Array{Items: items}, nil

	case "null":
		return &argfmt.Null{}, nil

	case "boolean":
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, errtrace.Wrap(err)
		}
		return &argfmt.Bool{Value: b}, nil

	case "resource":
		return &argfmt.Resource{}, nil

	default:
		// "scalar", and any kind this version does not know.
		if len(raw) == 0 {
			return &argfmt.Null{}, nil
		}
		return decodeScalar(raw)
	}
}

func decodeScalar(raw json.RawMessage) (argfmt.Value, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &argfmt.Scalar{Value: v}, nil
}
