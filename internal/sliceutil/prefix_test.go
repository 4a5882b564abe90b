package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveCommonPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc         string
		giveA, giveB []string
		wantA, wantB []string
	}{
		{desc: "both empty"},
		{
			desc:  "a empty",
			giveB: []string{"srv", "app"},
			wantB: []string{"srv", "app"},
		},
		{
			desc:  "b empty",
			giveA: []string{"srv", "app"},
			wantA: []string{"srv", "app"},
		},
		{
			desc:  "no shared prefix",
			giveA: []string{"srv", "app"},
			giveB: []string{"tmp", "out"},
			wantA: []string{"srv", "app"},
			wantB: []string{"tmp", "out"},
		},
		{
			desc:  "shared root",
			giveA: []string{"srv", "app", "payments"},
			giveB: []string{"srv", "app", "cmd", "run"},
			wantA: []string{"payments"},
			wantB: []string{"cmd", "run"},
		},
		{
			desc:  "a extends b",
			giveA: []string{"srv", "app", "payments", "charge.go"},
			giveB: []string{"srv", "app"},
			wantA: []string{"payments", "charge.go"},
		},
		{
			desc:  "b extends a",
			giveA: []string{"srv", "app"},
			giveB: []string{"srv", "app", "main.go"},
			wantB: []string{"main.go"},
		},
		{
			desc:  "equal",
			giveA: []string{"srv", "app"},
			giveB: []string{"srv", "app"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			gotA, gotB := RemoveCommonPrefix(tt.giveA, tt.giveB)
			assert.Equal(t, tt.wantA, gotA, "a")
			assert.Equal(t, tt.wantB, gotB, "b")
		})
	}
}
