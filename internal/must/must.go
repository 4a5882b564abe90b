// Package must panics on violated invariants.
package must

import "fmt"

// NotErrorf panics if err is not nil.
// The printf-style message names the invariant that failed;
// the error is appended to it.
func NotErrorf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	panic(fmt.Sprintf(format, args...) + ": " + err.Error())
}
