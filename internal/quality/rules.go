package quality

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/linkaudit"
	"git.home.luguber.info/inful/mdsplit/internal/render"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
)

// File is a rendered section file under inspection.
type File struct {
	Name  string
	Title string // expected title; empty accepts any depth-1 title
	Body  string
	Lines []scan.Line
}

// FileRule checks a single rendered file.
type FileRule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check validates a file and returns any issues found.
	Check(f File) ([]Issue, error)
}

type titleMarkerRule struct{}

func (titleMarkerRule) Name() string { return RuleTitleMarker }

func (titleMarkerRule) Check(f File) ([]Issue, error) {
	first, _, _ := strings.Cut(f.Body, "\n")
	ok := false
	if f.Title != "" {
		ok = first == render.TitleLine(f.Title)
	} else if h, isHeading := scan.ParseHeading(first); isHeading {
		ok = h.Level == 1 && strings.HasSuffix(h.Raw, render.OmitMarker)
	}
	if ok {
		return nil, nil
	}
	return []Issue{{
		File:     f.Name,
		Severity: SeverityWarning,
		Rule:     RuleTitleMarker,
		Message:  "missing omit-in-toc marker on the title",
		Line:     1,
	}}, nil
}

type localTOCRule struct{}

func (localTOCRule) Name() string { return RuleLocalTOC }

func (localTOCRule) Check(f File) ([]Issue, error) {
	hasTOC, hasSubsections := false, false
	for _, line := range f.Lines {
		h := line.Heading
		if line.InFence || h == nil {
			continue
		}
		if h.Level == 2 && scan.IsTOCHeading(h) {
			hasTOC = true
			continue
		}
		if h.Level >= 2 && h.Level <= 4 {
			hasSubsections = true
		}
	}
	if hasTOC || !hasSubsections {
		return nil, nil
	}
	return []Issue{{
		File:     f.Name,
		Severity: SeverityWarning,
		Rule:     RuleLocalTOC,
		Message:  "has subsections but no Table of Contents",
	}}, nil
}

type headingJumpRule struct{}

func (headingJumpRule) Name() string { return RuleHeadingJump }

func (headingJumpRule) Check(f File) ([]Issue, error) {
	var issues []Issue
	for _, j := range HeadingJumps(f.Lines) {
		issues = append(issues, Issue{
			File:     f.Name,
			Severity: SeverityWarning,
			Rule:     RuleHeadingJump,
			Message:  fmt.Sprintf("heading level jump: %d → %d", j.From, j.To),
			Line:     j.Line,
		})
	}
	return issues, nil
}

// Jump is a heading that is more than one level deeper than its predecessor.
type Jump struct {
	From, To int
	Line     int
}

// HeadingJumps walks headings outside fences and reports every increase in
// depth by more than one.
func HeadingJumps(lines []scan.Line) []Jump {
	var jumps []Jump
	current := 0
	for _, line := range lines {
		h := line.Heading
		if line.InFence || h == nil {
			continue
		}
		if current != 0 && h.Level > current+1 {
			jumps = append(jumps, Jump{From: current, To: h.Level, Line: line.Number})
		}
		current = h.Level
	}
	return jumps
}

type brokenAnchorRule struct {
	auditor *linkaudit.Auditor
}

func (brokenAnchorRule) Name() string { return RuleBrokenAnchor }

func (r brokenAnchorRule) Check(f File) ([]Issue, error) {
	found, err := r.auditor.AuditFile(f.Name, f.Body)
	if err != nil {
		return nil, err
	}
	var issues []Issue
	for _, li := range found {
		if li.Category != linkaudit.CategoryBrokenAnchor {
			continue
		}
		issues = append(issues, Issue{
			File:     f.Name,
			Severity: SeverityError,
			Rule:     RuleBrokenAnchor,
			Message:  fmt.Sprintf("broken internal link: [%s](%s)", li.Text, li.Target),
			Line:     li.Line,
		})
	}
	return issues, nil
}

type contentSizeRule struct {
	min int
}

func (contentSizeRule) Name() string { return RuleContentSize }

func (r contentSizeRule) Check(f File) ([]Issue, error) {
	size := len(strings.TrimSpace(f.Body))
	if size >= r.min {
		return nil, nil
	}
	return []Issue{{
		File:     f.Name,
		Severity: SeverityWarning,
		Rule:     RuleContentSize,
		Message:  fmt.Sprintf("content seems too short (%d bytes, minimum %d)", size, r.min),
	}}, nil
}
