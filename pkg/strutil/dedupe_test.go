package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	got := DedupeAndTrim([]string{" a ", "b", "a", "", "  ", "b "})
	assert.Equal(t, []string{"a", "b"}, got)

	assert.Empty(t, DedupeAndTrim(nil))
}

func TestDedupeAndTrimLower(t *testing.T) {
	got := DedupeAndTrimLower([]string{"A", " a ", "B"})
	assert.Equal(t, []string{"a", "b"}, got)
}
