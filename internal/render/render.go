// Package render turns a section's source lines into a standalone document
// and assembles the root table of contents.
package render

import (
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/anchor"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
	"git.home.luguber.info/inful/mdsplit/internal/section"
)

// OmitMarker keeps generated headings out of editor-maintained TOCs.
const OmitMarker = "<!-- omit in toc -->"

// LocalTOCHeading is the heading placed above a section's mini-TOC.
const LocalTOCHeading = "## Table of Contents " + OmitMarker

// maxTOCDepth is the deepest source heading that gets a TOC entry.
const maxTOCDepth = 5

// Document pairs a section with its rendered body.
type Document struct {
	Section *section.Section
	Body    string
}

// TitleLine returns the first line every rendered section starts with.
func TitleLine(title string) string {
	return "# " + title + " " + OmitMarker
}

// Section renders s from the full source lines.
//
// Depth 3-6 headings are demoted by one level; depth 3-5 headings also get a
// mini-TOC entry linking to the anchor of their original text. The entries
// are recorded on s.Subsections. Everything else passes through unchanged.
func Section(source []string, s *section.Section) string {
	start, end := clampRange(len(source), s.StartLine, s.EndLine)

	s.Subsections = nil
	var (
		body    []string
		entries []string
	)

	for _, line := range scan.Lines(source[start:end]) {
		if line.Number == 1 && line.Heading != nil && line.Heading.Level == 2 {
			continue
		}

		h := line.Heading
		if line.InFence || h == nil || h.Level < 3 {
			body = append(body, line.Raw)
			continue
		}

		body = append(body, strings.Repeat("#", h.Level-1)+" "+h.Raw)
		if h.Level > maxTOCDepth {
			continue
		}

		a := anchor.ForHeading(h.Text)
		indent := strings.Repeat("  ", h.Level-3)
		entries = append(entries, indent+"- ["+h.Text+"](#"+a+")")
		s.Subsections = append(s.Subsections, section.Subsection{
			Title:  h.Text,
			Level:  h.Level,
			Anchor: a,
		})
	}

	out := []string{TitleLine(s.Title), ""}
	if len(entries) > 0 {
		out = append(out, LocalTOCHeading, "")
		out = append(out, entries...)
		out = append(out, "")
	}
	out = append(out, trimBlank(body)...)
	out = trimTrailingBlank(out)

	return strings.Join(out, "\n") + "\n"
}

// clampRange converts 1-based inclusive bounds into a safe slice range.
func clampRange(n, startLine, endLine int) (int, int) {
	start := startLine - 1
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := endLine
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	return trimTrailingBlank(lines)
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}
