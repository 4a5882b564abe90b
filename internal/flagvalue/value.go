// Package flagvalue provides flag.Value implementations
// for this tool's command line.
package flagvalue

import "flag"

// Getter constrains PT to be a pointer to T
// that implements flag.Getter.
type Getter[T any] interface {
	*T
	flag.Getter
}
