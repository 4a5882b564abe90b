package sliceutil

// Transform applies f to every element of from,
// collecting the results in a new slice.
// An empty input yields nil.
func Transform[From, To any](from []From, f func(From) To) []To {
	if len(from) == 0 {
		return nil
	}
	to := make([]To, 0, len(from))
	for _, v := range from {
		to = append(to, f(v))
	}
	return to
}
