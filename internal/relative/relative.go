// Package relative computes relative forms of slash-separated paths
// without touching the file system.
package relative

import (
	"fmt"
	"path"
	"strings"

	"go.abhg.dev/trace2html/internal/sliceutil"
)

// Path returns a path to dst, relative to the directory src.
// Both paths must be /-separated, and either both absolute
// or both relative.
//
// The result is assembled from the path strings alone,
// so the paths don't have to exist.
func Path(src, dst string) string {
	if path.IsAbs(src) != path.IsAbs(dst) {
		panic(fmt.Sprintf("Path(%q, %q): both must be absolute, or both must be relative", src, dst))
	}

	// src is a directory; a trailing slash adds nothing.
	src = strings.TrimSuffix(src, "/")

	var srcParts, dstParts []string
	if len(src) > 0 {
		srcParts = strings.Split(src, "/")
	}
	if len(dst) > 0 {
		dstParts = strings.Split(dst, "/")
	}
	srcParts, dstParts = sliceutil.RemoveCommonPrefix(srcParts, dstParts)

	// Climb out of what remains of src, then descend into dst.
	parts := make([]string, 0, len(srcParts)+len(dstParts))
	for range srcParts {
		parts = append(parts, "..")
	}
	parts = append(parts, dstParts...)
	return strings.Join(parts, "/")
}
