package argfmt

import (
	"fmt"
	"reflect"
	"sort"

	"go.abhg.dev/trace2html/internal/sliceutil"
)

// Capture describes live Go values as an argument list. It is the
// producer-side counterpart of the renderer: programs recording their
// own traces use it to turn call arguments into [Arg] values.
//
// Mapping: nil becomes [Null], booleans become [Bool], values of named
// struct types become [Object] recorded by their full type path,
// slices and arrays become positional [Array] values, maps become
// [Array] values named by key, and channels, functions, and unsafe
// pointers become [Resource]. Everything else is a [Scalar].
func Capture(values ...any) []Arg {
	return sliceutil.Transform(values, func(v any) Arg {
		return Arg{Value: capture(reflect.ValueOf(v), 0)}
	})
}

func capture(rv reflect.Value, depth int) Value {
	// Pointer and interface hops count toward the depth too,
	// or a self-referential value would recurse past the guard.
	if depth >= maxDepth {
		return &Raw{Markup: "&hellip;"}
	}
	if !rv.IsValid() {
		return &Null{}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return &Bool{Value: rv.Bool()}

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return &Null{}
		}
		return capture(rv.Elem(), depth+1)

	case reflect.Struct:
		return &Object{Class: typeName(rv.Type())}

	case reflect.Slice:
		if rv.IsNil() {
			return &Null{}
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte reads better as a quoted string.
			return &Scalar{Value: string(rv.Bytes())}
		}
		return captureList(rv, depth)

	case reflect.Array:
		return captureList(rv, depth)

	case reflect.Map:
		if rv.IsNil() {
			return &Null{}
		}
		keys := rv.MapKeys()
		names := make([]string, len(keys))
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			name := fmt.Sprint(k.Interface())
			names[i] = name
			byName[name] = rv.MapIndex(k)
		}
		sort.Strings(names)
		items := make([]Arg, len(names))
		for i, name := range names {
			items[i] = Arg{
				Name:  name,
				Named: true,
				Value: capture(byName[name], depth+1),
			}
		}
		return &Array{Items: items}

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return &Resource{}

	default:
		return &Scalar{Value: rv.Interface()}
	}
}

func captureList(rv reflect.Value, depth int) Value {
	items := make([]Arg, rv.Len())
	for i := range items {
		items[i] = Arg{Value: capture(rv.Index(i), depth+1)}
	}
	return &Array{Items: items}
}

// typeName returns the fully-qualified name of a type, or its Go
// spelling if it has none.
func typeName(t reflect.Type) string {
	if t.Name() == "" {
		return t.String()
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.Name()
	}
	return t.Name()
}
