// Package tocdetect recognises a hand-written table of contents near the top
// of a source document.
package tocdetect

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/scan"
)

// Strategy names a detection heuristic.
type Strategy string

const (
	StrategyHeader      Strategy = "header"
	StrategyLinkBullets Strategy = "link-bullets"
	StrategyBulletsOnly Strategy = "bullets-only"
)

const (
	headerWindow  = 50
	bulletWindow  = 100
	maxHeadings   = 4
	minRunEntries = 3
)

var (
	linkBullet   = regexp.MustCompile(`^[-*]\s+\[.*\]\(.*\)`)
	letterBullet = regexp.MustCompile(`^[-*]\s+[A-Za-z]`)
)

// Result is a detected table of contents.
type Result struct {
	Strategy  Strategy
	StartLine int      // 1-based line of the first entry
	Entries   []string // trimmed entry lines
}

type detector func(lines []scan.Line) (Result, bool)

// Detect runs the strategies in rank order and returns the first match.
func Detect(source []string) (Result, bool) {
	lines := scan.Lines(source)
	for _, d := range []detector{byHeader, byLinkBullets, byBulletsOnly} {
		if r, ok := d(lines); ok {
			return r, true
		}
	}
	return Result{}, false
}

func window(lines []scan.Line, n int) []scan.Line {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// isTopHeading reports a depth-1 or depth-2 heading.
func isTopHeading(l scan.Line) bool {
	return l.Heading != nil && l.Heading.Level <= 2
}

// byHeader collects "- " items below a "Table of Contents" or "Contents"
// heading until the next top-level heading.
func byHeader(lines []scan.Line) (Result, bool) {
	var r Result
	inTOC := false
	for _, l := range window(lines, headerWindow) {
		if l.InFence {
			continue
		}
		if isTopHeading(l) {
			if inTOC {
				break
			}
			inTOC = scan.IsTOCTitle(l.Heading.Text)
			continue
		}
		if !inTOC {
			continue
		}
		trimmed := strings.TrimSpace(l.Raw)
		if strings.HasPrefix(trimmed, "- ") {
			if r.StartLine == 0 {
				r.StartLine = l.Number
			}
			r.Entries = append(r.Entries, trimmed)
		}
	}
	if len(r.Entries) == 0 {
		return Result{}, false
	}
	r.Strategy = StrategyHeader
	return r, true
}

// byLinkBullets finds the first run of at least three consecutive link
// bullets. Blank lines do not break a run; headings and prose do. The scan
// gives up after a few headings.
func byLinkBullets(lines []scan.Line) (Result, bool) {
	var run Result
	headings := 0
	for _, l := range window(lines, bulletWindow) {
		if l.InFence {
			continue
		}
		trimmed := strings.TrimSpace(l.Raw)
		switch {
		case isTopHeading(l):
			if len(run.Entries) >= minRunEntries {
				return finish(run, StrategyLinkBullets), true
			}
			run = Result{}
			headings++
			if headings > maxHeadings {
				return Result{}, false
			}
		case linkBullet.MatchString(trimmed):
			if run.StartLine == 0 {
				run.StartLine = l.Number
			}
			run.Entries = append(run.Entries, trimmed)
		case trimmed == "":
		default:
			if len(run.Entries) >= minRunEntries {
				return finish(run, StrategyLinkBullets), true
			}
			run = Result{}
		}
	}
	if len(run.Entries) >= minRunEntries {
		return finish(run, StrategyLinkBullets), true
	}
	return Result{}, false
}

// byBulletsOnly finds a run of at least three consecutive bullets that start
// with a letter and is closed by a heading.
func byBulletsOnly(lines []scan.Line) (Result, bool) {
	var run Result
	for _, l := range window(lines, bulletWindow) {
		if l.InFence {
			continue
		}
		trimmed := strings.TrimSpace(l.Raw)
		switch {
		case isTopHeading(l):
			if len(run.Entries) >= minRunEntries {
				return finish(run, StrategyBulletsOnly), true
			}
			run = Result{}
		case letterBullet.MatchString(trimmed):
			if run.StartLine == 0 {
				run.StartLine = l.Number
			}
			run.Entries = append(run.Entries, trimmed)
		case trimmed == "":
		default:
			run = Result{}
		}
	}
	return Result{}, false
}

func finish(r Result, s Strategy) Result {
	r.Strategy = s
	return r
}
