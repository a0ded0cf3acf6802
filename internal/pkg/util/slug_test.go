package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
	}{
		{"basic", "Hello, World! 2026", "hello-world-2026"},
		{"leading trailing space", "  My First Post  ", "my-first-post"},
		{"punctuation only", "!!!???", ""},
		{"collapses hyphens", "a -- b", "a-b"},
		{"already clean", "already-clean-slug", "already-clean-slug"},
		{"non ascii stripped", "Café précis", "caf-prcis"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateSlug(tc.in, 100))
		})
	}
}

func TestGenerateSlugTruncation(t *testing.T) {
	long := strings.Repeat("word ", 50)

	got := GenerateSlug(long, 20)
	assert.LessOrEqual(t, len(got), 20)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.Equal(t, "word-word-word-word", got)
}

func TestGenerateSlugNoLimit(t *testing.T) {
	long := strings.Repeat("a", 300)
	assert.Equal(t, long, GenerateSlug(long, 0))
}
