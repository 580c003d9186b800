// Package section partitions a tokenized document into top-level sections and
// assigns each one its output filename.
package section

// Section is one depth-2-heading-delimited span of the source document.
type Section struct {
	Title     string // heading text with HTML comments removed
	StartLine int // 1-based, inclusive
	EndLine   int // 1-based, inclusive
	Level     int
	Filename  string
	Anchor    string

	// Subsections are filled in by the renderer and only feed the root TOC.
	Subsections []Subsection
}

// Subsection is a nested heading discovered while rendering a section.
type Subsection struct {
	Title  string
	Level  int // depth in the source document (3-5)
	Anchor string
}

// LineCount returns the number of source lines covered by the section.
func (s *Section) LineCount() int {
	return s.EndLine - s.StartLine + 1
}

// Filenames returns the assigned filenames in section order.
func Filenames(sections []*Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Filename)
	}
	return out
}
