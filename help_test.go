package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelp_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    Help
		wantErr string
	}{
		{give: "usage"},
		{give: "default"},
		{give: "link"},
		{give: "style"},
		{give: "trace"},
		{
			give:    "not-a-topic",
			wantErr: `unknown help topic "not-a-topic": valid values`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.give.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.give.Write(io.Discard)
			if len(tt.wantErr) > 0 {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHelp_Write_none(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	assert.NoError(t, NoHelp.Write(&sb))
	assert.Empty(t, sb.String())
}

func TestHelp_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want Help
	}{
		{give: "true", want: DefaultHelp},
		{give: "LINK", want: "link"},
		{give: " trace ", want: "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			var h Help
			assert.NoError(t, h.Set(tt.give))
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestUsageHelp_isFirstLine(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	assert.NoError(t, UsageHelp.Write(&sb))

	got := sb.String()
	assert.True(t, strings.HasPrefix(got, "USAGE:"), "got %q", got)
	assert.Equal(t, 1, strings.Count(got, "\n"))
}
