package sliceutil

// RemoveCommonPrefix drops the longest prefix shared by a and b,
// returning what remains of each. A side that is consumed entirely
// comes back nil.
func RemoveCommonPrefix[T comparable](a, b []T) (restA, restB []T) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i:], b[i:]
		}
	}
	restA, restB = a[n:], b[n:]
	if len(restA) == 0 {
		restA = nil
	}
	if len(restB) == 0 {
		restB = nil
	}
	return restA, restB
}
