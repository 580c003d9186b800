// Package quality runs post-split checks over rendered section files and the
// root table of contents. Every finding is advisory; nothing here blocks
// output from being written.
package quality

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/linkaudit"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
	"git.home.luguber.info/inful/mdsplit/internal/render"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
	"git.home.luguber.info/inful/mdsplit/internal/section"
)

// Checker performs quality checks on split output.
type Checker struct {
	cfg    Config
	rules  []FileRule
	logger *slog.Logger
}

// NewChecker creates a checker. A zero MinContentBytes uses the default.
func NewChecker(cfg Config, logger *slog.Logger) *Checker {
	if cfg.MinContentBytes <= 0 {
		cfg.MinContentBytes = DefaultMinContentBytes
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		cfg:    cfg,
		logger: logger,
		rules: []FileRule{
			titleMarkerRule{},
			localTOCRule{},
			headingJumpRule{},
			brokenAnchorRule{auditor: linkaudit.New(logger)},
			contentSizeRule{min: cfg.MinContentBytes},
		},
	}
}

// CheckFile applies every file rule to f.
func (c *Checker) CheckFile(f File) ([]Issue, error) {
	if f.Lines == nil {
		f.Lines = scan.Lines(scan.SplitLines(f.Body))
	}

	var issues []Issue
	for _, rule := range c.rules {
		found, err := rule.Check(f)
		if err != nil {
			return nil, fmt.Errorf("rule %s on %s: %w", rule.Name(), f.Name, err)
		}
		for _, issue := range found {
			c.logger.Debug("Quality issue",
				logfields.File(f.Name),
				logfields.Rule(issue.Rule),
				logfields.Line(issue.Line))
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// CheckFiles applies the file rules to every file and reports duplicates
// among their names.
func (c *Checker) CheckFiles(files []File) (*Report, error) {
	report := &Report{Issues: []Issue{}, FilesTotal: len(files)}
	names := make([]string, 0, len(files))
	for _, f := range files {
		issues, err := c.CheckFile(f)
		if err != nil {
			return nil, err
		}
		report.Add(issues...)
		names = append(names, f.Name)
	}
	report.Add(CheckDuplicates(names)...)
	return report, nil
}

// Check runs the full suite over a split result: every rendered document,
// the root TOC and the document-wide numbering.
func (c *Checker) Check(docs []render.Document, rootTOC string) (*Report, error) {
	files := make([]File, 0, len(docs))
	sections := make([]*section.Section, 0, len(docs))
	for _, d := range docs {
		files = append(files, File{Name: d.Section.Filename, Title: d.Section.Title, Body: d.Body})
		sections = append(sections, d.Section)
	}

	report, err := c.CheckFiles(files)
	if err != nil {
		return nil, err
	}
	report.Add(CheckRootTOC(rootTOC, section.Filenames(sections))...)
	report.Add(CheckNumbering(sections)...)
	return report, nil
}

// CheckRootTOC verifies the root TOC carries the omit marker and links every
// section file.
func CheckRootTOC(toc string, filenames []string) []Issue {
	var issues []Issue
	if !strings.Contains(toc, render.OmitMarker) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Rule:     RuleRootTOC,
			Message:  "root TOC is missing the omit-in-toc marker",
		})
	}
	for _, name := range filenames {
		if strings.Contains(toc, "]("+name+")") || strings.Contains(toc, "]("+name+"#") {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Rule:     RuleRootTOC,
			Message:  fmt.Sprintf("root TOC is missing a link to %s", name),
		})
	}
	return issues
}

// CheckNumbering reports explicitly numbered titles whose leading integers
// are not exactly 1..N in document order.
func CheckNumbering(sections []*section.Section) []Issue {
	var numbers []int
	for _, s := range sections {
		if p, ok := section.ParsePrefix(s.Title); ok {
			numbers = append(numbers, p.Number)
		}
	}
	for i, n := range numbers {
		if n != i+1 {
			return []Issue{{
				Severity: SeverityWarning,
				Rule:     RuleNumbering,
				Message:  fmt.Sprintf("inconsistent section numbering: %v", numbers),
			}}
		}
	}
	return nil
}

// CheckDuplicates reports filenames used by more than one section.
func CheckDuplicates(filenames []string) []Issue {
	counts := make(map[string]int, len(filenames))
	for _, name := range filenames {
		counts[name]++
	}

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)

	issues := make([]Issue, 0, len(dups))
	for _, name := range dups {
		issues = append(issues, Issue{
			File:     name,
			Severity: SeverityError,
			Rule:     RuleDuplicateFilename,
			Message:  fmt.Sprintf("duplicate filename %s used by %d sections", name, counts[name]),
		})
	}
	return issues
}

// MissingFile reports a section file that should exist but does not.
func MissingFile(name string) Issue {
	return Issue{
		File:     name,
		Severity: SeverityError,
		Rule:     RuleMissingFile,
		Message:  fmt.Sprintf("file %s was not created", name),
	}
}
