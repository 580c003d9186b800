// Package scan tokenizes Markdown lines into fence state and ATX headings.
//
// It is the only place that decides what counts as a heading or a code fence;
// segmentation, rendering, link auditing and quality checks all consume its
// output so they never disagree about boundaries.
package scan

import (
	"regexp"
	"strings"
)

// Heading is an ATX heading detected on a line outside a code fence.
type Heading struct {
	Level int
	// Raw is the heading text as written, trimmed.
	Raw string
	// Text is Raw with HTML comments (such as the omit-in-toc marker) removed.
	Text string
}

// Line is one tokenized source line.
type Line struct {
	Number  int // 1-based
	Raw     string
	InFence bool // inside a fenced code block, delimiters included
	Fence   bool // the line is a fence delimiter
	Heading *Heading
}

var htmlComment = regexp.MustCompile(`<!--.*?-->`)

// Lines classifies each line. Fence delimiters toggle fence state; headings
// are only detected outside fences.
func Lines(lines []string) []Line {
	out := make([]Line, len(lines))

	inFence := false
	activeFence := ""
	for i, raw := range lines {
		line := Line{Number: i + 1, Raw: raw}

		if marker, ok := FenceMarker(raw); ok {
			next, nextActive := toggleFence(inFence, activeFence, marker)
			if next != inFence {
				inFence, activeFence = next, nextActive
				line.Fence = true
				line.InFence = true
				out[i] = line
				continue
			}
		}

		if inFence {
			line.InFence = true
			out[i] = line
			continue
		}

		if h, ok := ParseHeading(raw); ok {
			line.Heading = h
		}
		out[i] = line
	}

	return out
}

// FenceMarker reports whether line opens or closes a fenced code block and
// returns its whole delimiter run, such as "```" or "~~~~". Indentation and
// an info string are allowed.
func FenceMarker(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") && !strings.HasPrefix(trimmed, "~~~") {
		return "", false
	}
	n := 1
	for n < len(trimmed) && trimmed[n] == trimmed[0] {
		n++
	}
	return trimmed[:n], true
}

// toggleFence opens a fence, or closes it when marker uses the opener's
// character in a run at least as long. A backtick fence is not closed by
// tildes and vice versa, and "```" does not close a "````" fence.
func toggleFence(inFence bool, activeFence string, marker string) (bool, string) {
	if !inFence {
		return true, marker
	}
	if marker[0] == activeFence[0] && len(marker) >= len(activeFence) {
		return false, ""
	}
	return inFence, activeFence
}

// ParseHeading detects an ATX heading (depth 1-6) on a single line without
// regard to fence state. The marker must be followed by whitespace and
// non-empty text.
func ParseHeading(line string) (*Heading, bool) {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(trimmed) {
		return nil, false
	}
	if trimmed[level] != ' ' && trimmed[level] != '\t' {
		return nil, false
	}

	raw := strings.TrimSpace(trimmed[level:])
	if raw == "" {
		return nil, false
	}

	return &Heading{
		Level: level,
		Raw:   raw,
		Text:  StripComments(raw),
	}, true
}

// StripComments removes inline HTML comments and trims the result.
func StripComments(s string) string {
	if !strings.Contains(s, "<!--") {
		return s
	}
	return strings.TrimSpace(htmlComment.ReplaceAllString(s, ""))
}

// tocTitles are the heading texts recognised as a table-of-contents marker.
var tocTitles = map[string]bool{
	"table of contents": true,
	"contents":          true,
}

// IsTOCHeading reports whether h is a depth-2 table-of-contents heading.
// Such headings never start a section and never appear in a TOC themselves.
func IsTOCHeading(h *Heading) bool {
	if h == nil || h.Level != 2 {
		return false
	}
	return IsTOCTitle(h.Text)
}

// IsTOCTitle reports whether text names a table of contents, ignoring case
// and a trailing colon.
func IsTOCTitle(text string) bool {
	t := strings.ToLower(strings.TrimSpace(StripComments(text)))
	t = strings.TrimSpace(strings.TrimSuffix(t, ":"))
	return tocTitles[t]
}

// SplitLines splits document content into lines the way a line reader does:
// a trailing newline does not produce an extra empty line and CR before LF is
// dropped.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
