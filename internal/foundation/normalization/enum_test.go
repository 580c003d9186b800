package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type color string

const (
	red  color = "red"
	blue color = "blue"
)

var colors = NewEnum("color", map[string]color{"red": red, "Blue": blue, "azure": blue}, red)

func TestEnum_Normalize(t *testing.T) {
	tests := map[string]color{
		"red":     red,
		"  RED  ": red,
		"blue":    blue,
		"Azure":   blue,
		"green":   red,
		"":        red,
	}
	for raw, want := range tests {
		assert.Equal(t, want, colors.Normalize(raw), "raw %q", raw)
	}
}

func TestEnum_Lookup(t *testing.T) {
	v, ok := colors.Lookup(" blue")
	assert.True(t, ok)
	assert.Equal(t, blue, v)

	_, ok = colors.Lookup("green")
	assert.False(t, ok)
}

func TestEnum_Keys(t *testing.T) {
	assert.Equal(t, []string{"azure", "blue", "red"}, colors.Keys())
}

func TestEnum_Resolve(t *testing.T) {
	exact := colors.Resolve("theme.color", "red")
	assert.True(t, exact.Known)
	assert.False(t, exact.Changed)
	assert.Empty(t, exact.Warning)

	cased := colors.Resolve("theme.color", "BLUE")
	assert.Equal(t, blue, cased.Value)
	assert.True(t, cased.Changed)
	assert.Contains(t, cased.Warning, `normalized theme.color from "BLUE" to "blue"`)

	unknown := colors.Resolve("theme.color", "green")
	assert.False(t, unknown.Known)
	assert.Equal(t, red, unknown.Value)
	assert.Contains(t, unknown.Warning, `unknown color "green"`)
	assert.Contains(t, unknown.Warning, "valid: azure, blue, red")
}
