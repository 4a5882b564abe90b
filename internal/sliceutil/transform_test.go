package sliceutil

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform(t *testing.T) {
	t.Parallel()

	t.Run("empty yields nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, Transform(nil, strconv.Itoa))
		assert.Nil(t, Transform([]int{}, strconv.Itoa))
	})

	t.Run("changes type", func(t *testing.T) {
		t.Parallel()

		got := Transform([]int{7, 42, 1}, strconv.Itoa)
		assert.Equal(t, []string{"7", "42", "1"}, got)
	})

	t.Run("keeps order", func(t *testing.T) {
		t.Parallel()

		got := Transform([]string{"charge", "run", "main"}, func(s string) string {
			return s + ".go"
		})
		assert.Equal(t, []string{"charge.go", "run.go", "main.go"}, got)
	})
}
