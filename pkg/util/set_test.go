package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))

	s.Add("a")
	s.AddAll("b", "c", "a")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("a"))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, s.List())

	s.Remove("b")
	assert.False(t, s.Has("b"))
	assert.Equal(t, 2, s.Len())
}
