package sliceutil

// RemoveFunc filters items in place,
// dropping every element for which skip returns true.
//
// The original slice must not be used after this.
func RemoveFunc[T any](items []T, skip func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if skip(item) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
