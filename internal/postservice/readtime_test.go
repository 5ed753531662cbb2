package postservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimateReadTime(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "one word",
			content: "hello",
			want:    "1 min read",
		},
		{
			name:    "exactly one minute",
			content: words(200),
			want:    "1 min read",
		},
		{
			name:    "just over one minute",
			content: words(201),
			want:    "2 min read",
		},
		{
			name:    "exactly two minutes",
			content: words(400),
			want:    "2 min read",
		},
		{
			name:    "long content",
			content: words(1001),
			want:    "6 min read",
		},
		{
			name:    "empty content",
			content: "",
			want:    "1 min read",
		},
		{
			name:    "irregular whitespace",
			content: "one\n\ntwo\tthree    four",
			want:    "1 min read",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateReadTime(tc.content))
		})
	}
}
