package splitter

import (
	"strings"
	"testing"
	"time"

	"git.home.luguber.info/inful/mdsplit/internal/anchor"
	"git.home.luguber.info/inful/mdsplit/internal/linkaudit"
	"git.home.luguber.info/inful/mdsplit/internal/metrics"
	"git.home.luguber.info/inful/mdsplit/internal/quality"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
	"git.home.luguber.info/inful/mdsplit/internal/section"
	"git.home.luguber.info/inful/mdsplit/internal/tocdetect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitText(t *testing.T, doc string, opts Options) *Result {
	t.Helper()
	res, err := Split(scan.SplitLines(doc), opts)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestSplit_EmptyInput(t *testing.T) {
	for _, doc := range []string{"", "# Title only\n\nSome prose without sections.\n"} {
		res := splitText(t, doc, Options{})
		assert.True(t, res.Empty())
		assert.Empty(t, res.Documents)
		assert.Empty(t, res.RootTOC)
		assert.Nil(t, res.Quality)
	}
}

func TestSplit_FenceInvariance(t *testing.T) {
	plain := splitText(t, "## A\ntext\n## B\nmore\n## C\nend\n", Options{})
	fenced := splitText(t, "## A\ntext\n```\n## B\n```\nmore\n## C\nend\n", Options{})

	require.Len(t, plain.Sections, 3)
	require.Len(t, fenced.Sections, 2)
	assert.Contains(t, fenced.Documents[0].Body, "```\n## B\n```")
	assert.True(t, fenced.Features.HasCodeBlocks)
	assert.False(t, plain.Features.HasCodeBlocks)
}

func TestSplit_FilenameContinuation(t *testing.T) {
	res := splitText(t, "## Alpha\n## Beta\n## 7. Gamma\n## Delta\n", Options{})
	assert.Equal(t, []string{"00-alpha.md", "01-beta.md", "07-gamma.md", "08-delta.md"}, section.Filenames(res.Sections))
	assert.True(t, res.Features.HasNumberedSections)
}

func TestSplit_RoundTripDemotion(t *testing.T) {
	res := splitText(t, "## Top\n### Mid\n#### Überblick & Details\ntext\n", Options{})
	require.Len(t, res.Documents, 1)

	body := res.Documents[0].Body
	assert.Contains(t, body, "\n### Überblick & Details\n")

	sub := res.Sections[0].Subsections[1]
	assert.Equal(t, anchor.ForHeading("Überblick & Details"), sub.Anchor)
	assert.Empty(t, res.LinkIssues, "mini-TOC anchors must resolve in the rendered file")
}

func TestSplit_BrokenLinkDetection(t *testing.T) {
	doc := strings.Join([]string{
		"## Intro",
		"### Details",
		"See [details](#details), [gone](#nowhere) and [other](../other.md).",
		"## Next",
		"Back to [details](#details).",
	}, "\n")

	res := splitText(t, doc, Options{})
	intro := res.LinkIssuesFor("00-intro.md")
	require.Len(t, intro, 2)
	assert.Equal(t, linkaudit.CategoryBrokenAnchor, intro[0].Category)
	assert.Equal(t, "#nowhere", intro[0].Target)
	assert.Equal(t, linkaudit.CategoryFileReference, intro[1].Category)
	assert.Equal(t, "../other.md", intro[1].Target)

	next := res.LinkIssuesFor("01-next.md")
	require.Len(t, next, 1, "cross-file anchors never resolve")
	assert.Equal(t, "#details", next[0].Target)

	assert.True(t, res.Quality.HasErrors())
}

func TestSplit_FeaturesAndSourceTOC(t *testing.T) {
	doc := "# Doc\n\n## Contents\n- [A](#a)\n\n## A\n![logo](logo.png)\n"
	res := splitText(t, doc, Options{})
	assert.True(t, res.Features.HasImages)
	assert.False(t, res.Features.HasNumberedSections)
	require.NotNil(t, res.SourceTOC)
	assert.Equal(t, tocdetect.StrategyHeader, res.SourceTOC.Strategy)
	require.Len(t, res.Sections, 1, "the contents heading does not open a section")
	assert.Equal(t, "A", res.Sections[0].Title)
}

func TestSplit_QualityConfig(t *testing.T) {
	doc := "## Tiny\nshort\n"
	strict := splitText(t, doc, Options{Quality: quality.Config{MinContentBytes: 500}})
	lenient := splitText(t, doc, Options{Quality: quality.Config{MinContentBytes: 1}})

	assert.Len(t, strict.Quality.ForFile("00-tiny.md"), 1)
	assert.Empty(t, lenient.Quality.ForFile("00-tiny.md"))
}

func TestSplit_IsDeterministic(t *testing.T) {
	doc := "## 2. B\n### x\n## A\n### 🚀\n[r](#h-1f680)\n"
	a := splitText(t, doc, Options{})
	b := splitText(t, doc, Options{})
	assert.Equal(t, a.RootTOC, b.RootTOC)
	for i := range a.Documents {
		assert.Equal(t, a.Documents[i].Body, b.Documents[i].Body)
	}
	assert.Empty(t, a.LinkIssues, "emoji-only headings resolve through the code point fallback")
}

type capturingRecorder struct {
	metrics.NoopRecorder
	stages   map[string]int
	outcomes []metrics.ResultLabel
	sections int
	links    map[string]int
}

func newCapturingRecorder() *capturingRecorder {
	return &capturingRecorder{stages: map[string]int{}, links: map[string]int{}}
}

func (c *capturingRecorder) ObserveStageDuration(stage string, _ time.Duration) { c.stages[stage]++ }
func (c *capturingRecorder) IncSplitOutcome(o metrics.ResultLabel)              { c.outcomes = append(c.outcomes, o) }
func (c *capturingRecorder) SetSections(n int)                                  { c.sections = n }
func (c *capturingRecorder) AddLinkIssues(category string, n int)               { c.links[category] += n }

func TestSplit_RecordsMetrics(t *testing.T) {
	rec := newCapturingRecorder()
	splitText(t, "## A\n[x](#missing)\n## B\ntext\n", Options{Recorder: rec})

	for _, stage := range []string{StageTokenize, StageSegment, StageName, StageRender, StageTOC, StageAudit, StageQuality} {
		assert.Equal(t, 1, rec.stages[stage], stage)
	}
	assert.Equal(t, 2, rec.sections)
	assert.Equal(t, 1, rec.links[string(linkaudit.CategoryBrokenAnchor)])
	assert.Equal(t, []metrics.ResultLabel{metrics.ResultWarning}, rec.outcomes)
}

func TestSplit_EmptyRecordsOutcome(t *testing.T) {
	rec := newCapturingRecorder()
	splitText(t, "no headings\n", Options{Recorder: rec})
	assert.Equal(t, []metrics.ResultLabel{metrics.ResultEmpty}, rec.outcomes)
	assert.Zero(t, rec.stages[StageRender])
}

func TestPlan(t *testing.T) {
	sections := Plan(scan.SplitLines("## 1. First\n## 1.3. Gap\n## 4. Jump\n"))
	assert.Equal(t, []string{"01-first.md", "01-gap.md", "04-jump.md"}, section.Filenames(sections))
	for _, s := range sections {
		assert.Empty(t, s.Subsections)
	}
}
