// Package pathx supplements the standard [path] package.
package pathx

import "strings"

// Descends reports whether path b lies at or under path a.
// A trailing slash on a is ignored.
func Descends(a, b string) bool {
	a = strings.TrimSuffix(a, "/")
	rest, ok := strings.CutPrefix(b, a)
	if !ok {
		return false
	}
	return rest == "" || rest[0] == '/'
}
