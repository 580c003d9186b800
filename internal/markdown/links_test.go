package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links, err := ExtractLinks([]byte("See [API](api.md) for details."))
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
	require.Equal(t, "API", links[0].Text)
	require.Equal(t, 1, links[0].Line)
}

func TestExtractLinks_ImageLink(t *testing.T) {
	links, err := ExtractLinks([]byte("![Diagram](diagram.png)"))
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, LinkKindImage, links[0].Kind)
	require.True(t, links[0].IsImage())
	require.Equal(t, "diagram.png", links[0].Destination)
	require.Equal(t, "Diagram", links[0].Text)
}

func TestExtractLinks_AutoLink(t *testing.T) {
	links, err := ExtractLinks([]byte("<https://example.com/path>"))
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, LinkKindAuto, links[0].Kind)
	require.Equal(t, "https://example.com/path", links[0].Destination)
	require.Equal(t, 1, links[0].Line)
}

func TestExtractLinks_ReferenceLinkUsageAndDefinition(t *testing.T) {
	src := []byte("See [API][ref].\n\n[ref]: api.md\n")
	links, err := ExtractLinks(src)
	require.NoError(t, err)

	require.Len(t, links, 2)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
	require.Equal(t, LinkKindReferenceDefinition, links[1].Kind)
	require.Equal(t, "api.md", links[1].Destination)
	require.Equal(t, 3, links[1].Line)
}

func TestExtractLinks_SkipsInlineCodeAndCodeBlocks(t *testing.T) {
	src := []byte("" +
		"Inline code: `[Link](./ignored-inline.md)`\n" +
		"\n" +
		"```\n" +
		"[Link](./ignored-fence.md)\n" +
		"```\n" +
		"\n" +
		"Real: [OK](./real.md)\n")

	links, err := ExtractLinks(src)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "./real.md", links[0].Destination)
	require.Equal(t, 7, links[0].Line)
}

func TestExtractLinks_LineNumbers(t *testing.T) {
	src := []byte("# Title\n\nFirst paragraph\nwith a [late link](#late) here.\n\n- item [one](#one)\n")
	links, err := ExtractLinks(src)
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.Equal(t, "#late", links[0].Destination)
	require.Equal(t, 4, links[0].Line)
	require.Equal(t, "#one", links[1].Destination)
	require.Equal(t, 6, links[1].Line)
}

func TestExtractLinks_PermissiveDestinationsWithSpaces(t *testing.T) {
	src := []byte("Intro\n\nSee [the guide](../My Guide.md) and ![shot](img/a b.png).\n")
	links, err := ExtractLinks(src)
	require.NoError(t, err)
	require.Len(t, links, 2)

	require.Equal(t, LinkKindImage, links[0].Kind)
	require.Equal(t, "img/a b.png", links[0].Destination)
	require.Equal(t, 3, links[0].Line)

	require.Equal(t, LinkKindInline, links[1].Kind)
	require.Equal(t, "../My Guide.md", links[1].Destination)
	require.Equal(t, "the guide", links[1].Text)
}

func TestExtractLinks_TitledLinkIsNotDuplicated(t *testing.T) {
	links, err := ExtractLinks([]byte(`[Docs](./docs.md "The docs")`))
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "./docs.md", links[0].Destination)
}

func TestExtractLinks_FootnoteIsNotADefinition(t *testing.T) {
	links, err := ExtractLinks([]byte("Text[^1].\n\n[^1]: a note with spaces\n"))
	require.NoError(t, err)
	require.Empty(t, links)
}
