package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesDeduplicatedInOrder(t *testing.T) {
	names := Names()
	require.Equal(t, Len(), len(names))

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate %q", n)
		seen[n] = true
	}

	assert.Equal(t, "abort", names[0])
	assert.Equal(t, "wheel", names[len(names)-1])
}

func TestNamesReturnsCopy(t *testing.T) {
	names := Names()
	names[0] = "mutated"
	assert.Equal(t, "abort", Names()[0])
}

func TestContains(t *testing.T) {
	for _, name := range []string{"click", "keypress", "DOMContentLoaded", "SVGZoom", "error"} {
		assert.True(t, Contains(name), name)
	}
	for _, name := range []string{"", "Click", "clik", "h1", "o"} {
		assert.False(t, Contains(name), name)
	}
}

func TestNoSingleCharacterEvents(t *testing.T) {
	for _, name := range Names() {
		assert.Greater(t, len(name), 1, name)
	}
}

func TestWithPrefix(t *testing.T) {
	assert.Equal(t, []string{"keydown", "keypress", "keyup"}, WithPrefix("key"))
	assert.Empty(t, WithPrefix("zzz"))
	assert.Len(t, WithPrefix(""), Len())
}

func TestSuggest(t *testing.T) {
	got := Suggest("clik", 3)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "click")
	assert.LessOrEqual(t, len(got), 3)

	assert.Nil(t, Suggest("", 3))
	assert.Empty(t, Suggest("qqqqqq", 3))
}
