// Package errdefer folds errors from deferred cleanup calls
// into the surrounding function's returned error.
package errdefer

import (
	"errors"
	"io"
)

// Close calls closer.Close and joins its error, if any,
// into the error pointed at by err.
//
// Defer it with a named error return
// so that a failed close surfaces from the surrounding function.
func Close(err *error, closer io.Closer) {
	*err = errors.Join(*err, closer.Close())
}
