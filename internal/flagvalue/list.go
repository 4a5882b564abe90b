package flagvalue

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"

	"go.abhg.dev/trace2html/internal/sliceutil"
)

// List is a flag.Getter that collects every occurrence
// of a repeatable flag into a slice.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice so that a flag may be repeated,
// with each occurrence appended to the slice.
//
//	flag.Var(flagvalue.ListOf(&links), "link", ...)
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the values collected so far
// as a slice of the underlying type.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String joins the collected values with semicolons.
func (lv *List[T, PT]) String() string {
	return strings.Join(sliceutil.Transform(*lv, func(v T) string {
		// String is on the pointer type, not the value type.
		return fmt.Sprint(PT(&v))
	}), "; ")
}

// Set parses one occurrence of the flag and appends it.
func (lv *List[T, PT]) Set(s string) error {
	var v T
	if err := PT(&v).Set(s); err != nil {
		return errtrace.Wrap(err)
	}
	*lv = append(*lv, v)
	return nil
}
