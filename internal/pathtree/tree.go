// Package pathtree routes slash-separated paths to values by longest
// matching prefix.
//
// A value set at a path covers that path and everything below it,
// until a deeper path sets its own value:
//
//	var t pathtree.Root[string]
//	t.Set("srv/app", "X")
//	t.Set("srv/app/vendor", "Y")
//	t.Lookup("srv/app/main.go")       // "X"
//	t.Lookup("srv/app/vendor/lib.go") // "Y"
//	t.Lookup("etc/passwd")            // not found
//
// Repeated, leading, and trailing slashes in paths are ignored.
package pathtree

import "strings"

// Root is a prefix tree of values keyed by slash-separated paths.
// The zero value is an empty tree, ready to use.
type Root[T any] struct {
	root node[T]
}

// Set stores v at path p, overwriting a value stored there earlier.
// Paths below p without their own value inherit v.
//
// An empty p stores a value that every path inherits.
func (r *Root[T]) Set(p string, v T) {
	n := &r.root
	for _, name := range segments(p) {
		n = n.child(name)
	}
	n.value = &v
}

// Lookup returns the value stored at the longest prefix of p,
// inherited or not. It reports false if no prefix of p has a value.
func (r *Root[T]) Lookup(p string) (_ T, ok bool) {
	found := r.root.value
	n := &r.root
	for _, name := range segments(p) {
		n = n.children[name]
		if n == nil {
			break
		}
		if n.value != nil {
			found = n.value
		}
	}

	if found == nil {
		var zero T
		return zero, false
	}
	return *found, true
}

type node[T any] struct {
	value    *T
	children map[string]*node[T]
}

// child returns the child node for name, adding it if needed.
func (n *node[T]) child(name string) *node[T] {
	c := n.children[name]
	if c == nil {
		c = new(node[T])
		if n.children == nil {
			n.children = make(map[string]*node[T])
		}
		n.children[name] = c
	}
	return c
}

func segments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}
