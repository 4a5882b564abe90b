package ptr

// Of returns a pointer to v.
// It turns literals into pointers in one expression.
func Of[T any](v T) *T {
	return &v
}
