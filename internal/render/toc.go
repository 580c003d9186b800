package render

import (
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/section"
)

// RootTOCHeading is the first line of the root table of contents.
const RootTOCHeading = "# Table of Contents " + OmitMarker

// RootTOC links every section file and the subsections recorded on it.
// Sections must already be rendered so Subsections is populated.
func RootTOC(sections []*section.Section) string {
	var b strings.Builder
	b.WriteString(RootTOCHeading)
	b.WriteString("\n\n")

	for _, s := range sections {
		b.WriteString("- [" + s.Title + "](" + s.Filename + ")\n")
		for _, sub := range s.Subsections {
			b.WriteString(strings.Repeat("  ", sub.Level-2))
			b.WriteString("- [" + sub.Title + "](" + s.Filename + "#" + sub.Anchor + ")\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
