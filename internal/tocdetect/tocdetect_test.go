package tocdetect

import (
	"testing"

	"git.home.luguber.info/inful/mdsplit/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detect(doc string) (Result, bool) {
	return Detect(scan.SplitLines(doc))
}

func TestDetect_Header(t *testing.T) {
	doc := "# Title\n\n## Table of Contents\n\n- [Intro](#intro)\n- [Usage](#usage)\n\n## Intro\n- not toc\n"
	r, ok := detect(doc)
	require.True(t, ok)
	assert.Equal(t, StrategyHeader, r.Strategy)
	assert.Equal(t, 5, r.StartLine)
	assert.Equal(t, []string{"- [Intro](#intro)", "- [Usage](#usage)"}, r.Entries)
}

func TestDetect_HeaderWithColonAndContents(t *testing.T) {
	r, ok := detect("# Contents:\n- One\n")
	require.True(t, ok)
	assert.Equal(t, StrategyHeader, r.Strategy)
	assert.Equal(t, []string{"- One"}, r.Entries)
}

func TestDetect_HeaderBeyondWindowIsIgnored(t *testing.T) {
	doc := ""
	for i := 0; i < 60; i++ {
		doc += "text\n"
	}
	doc += "## Table of Contents\n- [A](#a)\n"
	_, ok := detect(doc)
	assert.False(t, ok)
}

func TestDetect_LinkBullets(t *testing.T) {
	doc := "# Title\n\nIntro prose.\n\n- [A](#a)\n- [B](#b)\n\n* [C](#c)\n\n## A\n"
	r, ok := detect(doc)
	require.True(t, ok)
	assert.Equal(t, StrategyLinkBullets, r.Strategy)
	assert.Equal(t, 5, r.StartLine)
	assert.Len(t, r.Entries, 3)
}

func TestDetect_LinkBulletsNeedThree(t *testing.T) {
	_, ok := detect("# Title\n- [A](#a)\n- [B](#b)\ntext\n")
	assert.False(t, ok)
}

func TestDetect_BulletsOnly(t *testing.T) {
	doc := "# Title\n- Overview\n- Setup\n- Usage\n## Overview\n"
	r, ok := detect(doc)
	require.True(t, ok)
	assert.Equal(t, StrategyBulletsOnly, r.Strategy)
	assert.Equal(t, []string{"- Overview", "- Setup", "- Usage"}, r.Entries)
}

func TestDetect_BulletsOnlyMustEndAtHeading(t *testing.T) {
	_, ok := detect("# Title\n- Overview\n- Setup\n- Usage\nprose\n")
	assert.False(t, ok)
}

func TestDetect_FencedTOCIsIgnored(t *testing.T) {
	doc := "# Title\n```\n## Table of Contents\n- [A](#a)\n- [B](#b)\n- [C](#c)\n```\n## A\n"
	_, ok := detect(doc)
	assert.False(t, ok)
}

func TestDetect_None(t *testing.T) {
	_, ok := detect("# Title\n\nJust prose.\n\n## Section\nMore prose.\n")
	assert.False(t, ok)
	_, ok = detect("")
	assert.False(t, ok)
}
