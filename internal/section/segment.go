package section

import (
	"git.home.luguber.info/inful/mdsplit/internal/anchor"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
)

// Segment groups tokenized lines into top-level sections.
//
// A section starts at every depth-2 heading outside a code fence (a table of
// contents heading excepted) and ends on the line before the next one, or on
// the last line of the document. Lines before the first section belong to
// none. A document without such headings yields an empty slice.
func Segment(lines []scan.Line) []*Section {
	var (
		sections []*Section
		current  *Section
	)

	for _, line := range lines {
		h := line.Heading
		if line.InFence || h == nil || h.Level != 2 || scan.IsTOCHeading(h) {
			continue
		}

		if current != nil {
			current.EndLine = line.Number - 1
			sections = append(sections, current)
		}
		title := h.Text
		if title == "" {
			title = h.Raw
		}
		current = &Section{
			Title:     title,
			StartLine: line.Number,
			EndLine:   len(lines),
			Level:     2,
			Anchor:    anchor.ForHeading(h.Text),
		}
	}

	if current != nil {
		sections = append(sections, current)
	}
	return sections
}
