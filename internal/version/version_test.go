package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)

	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "v1.2.3"
	assert.Contains(t, String(), "mdsplit v1.2.3")
}
