package section

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionsFor(titles ...string) []*Section {
	out := make([]*Section, 0, len(titles))
	for i, title := range titles {
		out = append(out, &Section{Title: title, StartLine: i + 1, EndLine: i + 1, Level: 2})
	}
	return out
}

func TestAssignFilenames_MixedNumbering(t *testing.T) {
	sections := sectionsFor("Section 1", "Section 2", "3. Numbered Section", "Conclusion")
	AssignFilenames(sections)

	assert.Equal(t, []string{
		"00-section-1.md",
		"01-section-2.md",
		"03-numbered-section.md",
		"04-conclusion.md",
	}, Filenames(sections))
}

func TestAssignFilenames_UnnumberedArePositional(t *testing.T) {
	sections := sectionsFor("Alpha", "Beta", "Gamma", "Delta", "Epsilon")
	AssignFilenames(sections)

	names := Filenames(sections)
	seen := map[string]bool{}
	for i, name := range names {
		assert.Equal(t, fmt.Sprintf("%02d-", i), name[:3])
		assert.False(t, seen[name], "duplicate filename %s", name)
		seen[name] = true
	}
}

func TestAssignFilenames_ContinuesAfterExplicitNumber(t *testing.T) {
	sections := sectionsFor("Alpha", "Beta", "7. Gamma", "Delta", "Epsilon")
	AssignFilenames(sections)

	assert.Equal(t, []string{
		"00-alpha.md",
		"01-beta.md",
		"07-gamma.md",
		"08-delta.md",
		"08-epsilon.md",
	}, Filenames(sections))
}

func TestAssignFilenames_ContinuesFromHighestNumber(t *testing.T) {
	sections := sectionsFor("4. Four", "2. Two", "Tail")
	AssignFilenames(sections)
	assert.Equal(t, "05-tail.md", sections[2].Filename)
}

func TestAssignFilenames_ZeroIsAnExplicitNumber(t *testing.T) {
	sections := sectionsFor("Intro", "0. Zero", "After")
	AssignFilenames(sections)
	assert.Equal(t, []string{"00-intro.md", "00-zero.md", "01-after.md"}, Filenames(sections))
}

func TestAssignFilenames_MultiPartPrefixTruncatesToLeadingInteger(t *testing.T) {
	sections := sectionsFor("1. First", "1.3. Gap", "4. Jump")
	AssignFilenames(sections)
	assert.Equal(t, []string{"01-first.md", "01-gap.md", "04-jump.md"}, Filenames(sections))
}

func TestAssignFilenames_ComplexNumbering(t *testing.T) {
	sections := sectionsFor(
		"1. First Section",
		"1.3. Section with Incorrect Numbering",
		"4. Section that Jumps to 4",
		"3.2.1. Section with Incorrect Level Format",
		"0. Section with Zero",
		"15. Section with High Number",
	)
	AssignFilenames(sections)

	assert.Equal(t, []string{
		"01-first-section.md",
		"01-section-with-incorrect-numbering.md",
		"04-section-that-jumps-to-4.md",
		"03-section-with-incorrect-level-format.md",
		"00-section-with-zero.md",
		"15-section-with-high-number.md",
	}, Filenames(sections))
}

func TestAssignFilenames_IsDeterministic(t *testing.T) {
	a := sectionsFor("Intro", "2. Setup", "Usage", "🚀 Launch")
	b := sectionsFor("Intro", "2. Setup", "Usage", "🚀 Launch")
	AssignFilenames(a)
	AssignFilenames(b)
	assert.Equal(t, Filenames(a), Filenames(b))
	assert.Equal(t, "03-launch.md", a[3].Filename)
}

func TestParsePrefix(t *testing.T) {
	p, ok := ParsePrefix("3.2.1. Deep")
	require.True(t, ok)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, "3.2.1", p.Dotted)
	assert.Equal(t, "Deep", p.Rest)

	p, ok = ParsePrefix("12. Twelve")
	require.True(t, ok)
	assert.Equal(t, 12, p.Number)

	for _, title := range []string{"Plain", "16.1.1 No trailing dot", "2024 Roadmap", "3.Tight", ". Dot"} {
		_, ok := ParsePrefix(title)
		assert.False(t, ok, title)
	}
}

func TestKebab(t *testing.T) {
	cases := map[string]string{
		"Section Name":               "section-name",
		"API Reference":              "api-reference",
		"Getting Started!":           "getting-started",
		"3. Numbered Section":        "3-numbered-section",
		"Diseño & Arquitectura":      "diseño-arquitectura",
		"Development 🛠️ and Testing": "development-and-testing",
		"  --Leading and trailing-- ": "leading-and-trailing",
		"snake_case":                 "snake_case",
		"中文标题 (Chinese Title)":       "中文标题-chinese-title",
	}
	for in, want := range cases {
		assert.Equal(t, want, Kebab(in), "input %q", in)
	}
}

func TestFilename_EmptyStem(t *testing.T) {
	assert.Equal(t, "02-section.md", Filename(2, "🚀🚀"))
	assert.Equal(t, "123-big.md", Filename(123, "Big"))
}
