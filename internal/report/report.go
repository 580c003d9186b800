// Package report summarises a split for humans: section list, link
// findings, content features and quality counts, rendered as Markdown.
package report

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/linkaudit"
	"git.home.luguber.info/inful/mdsplit/internal/splitter"
)

// Filename is the report file written next to the split output.
const Filename = "split-report.md"

// Entry is one produced section file.
type Entry struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Lines    int    `json:"lines"`
}

// Summary is the aggregated view of one split.
type Summary struct {
	Source         string            `json:"source,omitempty"`
	TOCFilename    string            `json:"toc_filename"`
	Sections       []Entry           `json:"sections"`
	BrokenAnchors  []linkaudit.Issue `json:"broken_anchors,omitempty"`
	FileReferences []linkaudit.Issue `json:"file_references,omitempty"`
	Features       splitter.Features `json:"features"`
	SourceTOC      string            `json:"source_toc,omitempty"` // detection strategy, empty when none
	QualityErrors  int               `json:"quality_errors"`
	QualityWarns   int               `json:"quality_warnings"`
}

// Build derives a Summary from a split result.
func Build(source, tocFilename string, res *splitter.Result) Summary {
	s := Summary{Source: source, TOCFilename: tocFilename}
	if res == nil {
		return s
	}

	for _, sec := range res.Sections {
		s.Sections = append(s.Sections, Entry{Filename: sec.Filename, Title: sec.Title, Lines: sec.LineCount()})
	}
	for _, li := range res.LinkIssues {
		switch li.Category {
		case linkaudit.CategoryBrokenAnchor:
			s.BrokenAnchors = append(s.BrokenAnchors, li)
		case linkaudit.CategoryFileReference:
			s.FileReferences = append(s.FileReferences, li)
		}
	}
	s.Features = res.Features
	if res.SourceTOC != nil {
		s.SourceTOC = string(res.SourceTOC.Strategy)
	}
	s.QualityErrors = res.Quality.ErrorCount()
	s.QualityWarns = res.Quality.WarningCount()
	return s
}

// Clean reports whether the split produced no findings.
func (s Summary) Clean() bool {
	return len(s.BrokenAnchors) == 0 && len(s.FileReferences) == 0 && s.QualityErrors == 0 && s.QualityWarns == 0
}

// Markdown renders the summary and a review checklist tailored to what the
// document contains.
func Markdown(s Summary) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# Split Report")
	line("")
	if s.Source != "" {
		line("Source: `%s`", s.Source)
		line("")
	}

	line("## Summary")
	line("")
	line("- Total sections: %d", len(s.Sections))
	line("- Broken anchors: %d", len(s.BrokenAnchors))
	line("- File references to review: %d", len(s.FileReferences))
	line("- Contains code blocks: %s", yesNo(s.Features.HasCodeBlocks))
	line("- Contains images: %s", yesNo(s.Features.HasImages))
	line("- Numbered sections: %s", yesNo(s.Features.HasNumberedSections))
	if s.SourceTOC != "" {
		line("- Source table of contents: detected (%s)", s.SourceTOC)
	}
	line("- Quality: %d error(s), %d warning(s)", s.QualityErrors, s.QualityWarns)
	line("")

	line("## Files")
	line("")
	line("- [%s](%s): table of contents", s.TOCFilename, s.TOCFilename)
	for _, e := range s.Sections {
		line("- [%s](%s): %s (%d lines)", e.Filename, e.Filename, e.Title, e.Lines)
	}
	line("")

	if len(s.BrokenAnchors) > 0 {
		line("## Broken Anchors")
		line("")
		line("Internal links whose target heading now lives in another file:")
		line("")
		for _, li := range s.BrokenAnchors {
			line("- %s:%d [%s](%s)", li.File, li.Line, li.Text, li.Target)
		}
		line("")
	}

	if len(s.FileReferences) > 0 {
		line("## File References")
		line("")
		line("Relative links that may need a new path after the split:")
		line("")
		for _, li := range s.FileReferences {
			line("- %s:%d [%s](%s)", li.File, li.Line, li.Text, li.Target)
		}
		line("")
	}

	line("## Review Checklist")
	line("")
	checks := []string{
		"Each file reads as a standalone document",
		"Headings are nested correctly after promotion",
		"Section tables of contents match the content",
		"Cross-references point at the right file and anchor",
	}
	if s.Features.HasCodeBlocks {
		checks = append(checks, "Code blocks are complete and closed")
	}
	if s.Features.HasImages {
		checks = append(checks, "Image paths resolve from the output directory")
	}
	if s.Features.HasNumberedSections {
		checks = append(checks, "Section numbering is consistent")
	}
	for _, c := range checks {
		line("- [ ] %s", c)
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
