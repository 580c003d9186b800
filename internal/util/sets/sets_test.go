package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("b", "a")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("c"))
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))
}
