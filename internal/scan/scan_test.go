package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeading(t *testing.T) {
	cases := []struct {
		line  string
		ok    bool
		level int
		text  string
	}{
		{"## Section", true, 2, "Section"},
		{"###### Deep", true, 6, "Deep"},
		{"# Title <!-- omit in toc -->", true, 1, "Title"},
		{"  ## Indented", true, 2, "Indented"},
		{"##\tTabbed", true, 2, "Tabbed"},
		{"## Header with trailing spaces   ", true, 2, "Header with trailing spaces"},
		{"## Header with ### inside the text", true, 2, "Header with ### inside the text"},
		{"##Missing space", false, 0, ""},
		{"## ", false, 0, ""},
		{"##", false, 0, ""},
		{"####### Too deep", false, 0, ""},
		{"plain text", false, 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			h, ok := ParseHeading(tc.line)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.level, h.Level)
			assert.Equal(t, tc.text, h.Text)
		})
	}
}

func TestParseHeading_KeepsRawText(t *testing.T) {
	h, ok := ParseHeading("# Intro <!-- omit in toc -->")
	require.True(t, ok)
	assert.Equal(t, "Intro <!-- omit in toc -->", h.Raw)
	assert.Equal(t, "Intro", h.Text)
}

func TestLines_FenceHidesHeadings(t *testing.T) {
	lines := Lines([]string{
		"## Real",
		"```markdown",
		"## Fake",
		"```",
		"### Also real",
	})

	require.Len(t, lines, 5)
	require.NotNil(t, lines[0].Heading)
	assert.True(t, lines[1].Fence)
	assert.True(t, lines[1].InFence)
	assert.Nil(t, lines[2].Heading)
	assert.True(t, lines[2].InFence)
	assert.True(t, lines[3].Fence)
	require.NotNil(t, lines[4].Heading)
	assert.Equal(t, 3, lines[4].Heading.Level)
	assert.False(t, lines[4].InFence)
	assert.Equal(t, 5, lines[4].Number)
}

func TestLines_MismatchedFenceMarkerDoesNotClose(t *testing.T) {
	lines := Lines([]string{
		"```",
		"~~~",
		"## Still code",
		"```",
		"## Heading",
	})

	assert.False(t, lines[1].Fence)
	assert.True(t, lines[1].InFence)
	assert.Nil(t, lines[2].Heading)
	assert.True(t, lines[3].Fence)
	require.NotNil(t, lines[4].Heading)
}

func TestLines_ShorterRunDoesNotCloseFence(t *testing.T) {
	lines := Lines([]string{
		"````markdown",
		"```",
		"## Shown in the example",
		"```",
		"````",
		"## After",
	})

	assert.True(t, lines[0].Fence)
	assert.False(t, lines[1].Fence)
	assert.Nil(t, lines[2].Heading)
	assert.True(t, lines[2].InFence)
	assert.False(t, lines[3].Fence)
	assert.True(t, lines[4].Fence)
	require.NotNil(t, lines[5].Heading)
	assert.False(t, lines[5].InFence)
}

func TestFenceMarker(t *testing.T) {
	cases := map[string]string{
		"```":        "```",
		"  ```go":    "```",
		"~~~~ text":  "~~~~",
		"`````":      "`````",
	}
	for line, want := range cases {
		got, ok := FenceMarker(line)
		assert.True(t, ok, line)
		assert.Equal(t, want, got, line)
	}
	_, ok := FenceMarker("``inline``")
	assert.False(t, ok)
}

func TestLines_IndentedFence(t *testing.T) {
	lines := Lines([]string{
		"   ```go",
		"## nope",
		"   ```",
		"## yes",
	})

	assert.Nil(t, lines[1].Heading)
	require.NotNil(t, lines[3].Heading)
}

func TestLines_UnclosedFenceRunsToEnd(t *testing.T) {
	lines := Lines([]string{"```", "## a", "## b"})
	for _, l := range lines {
		assert.Nil(t, l.Heading)
		assert.True(t, l.InFence)
	}
}

func TestIsTOCHeading(t *testing.T) {
	for _, line := range []string{
		"## Table of Contents",
		"## table of contents <!-- omit in toc -->",
		"## TABLE OF CONTENTS:",
		"## Contents",
	} {
		h, ok := ParseHeading(line)
		require.True(t, ok)
		assert.True(t, IsTOCHeading(h), line)
	}

	h, _ := ParseHeading("# Table of Contents")
	assert.False(t, IsTOCHeading(h), "depth-1 TOC heading is not a depth-2 marker")

	h, _ = ParseHeading("## Contents of the box")
	assert.False(t, IsTOCHeading(h))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
}
