package section

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// numberPrefix matches "N. ", "N.M. ", "N.M.K. " ... at the start of a title.
var numberPrefix = regexp.MustCompile(`^(\d+)((?:\.\d+)*)\.\s+(.+)$`)

// Prefix is an explicit numeric prefix parsed from a section title.
type Prefix struct {
	Number int    // leading integer, taken literally
	Dotted string // the full dotted number as written, e.g. "3.2.1"
	Rest   string // title text after the prefix
}

// ParsePrefix extracts an explicit numeric prefix from title.
//
// Multi-part prefixes are truncated to their leading integer: "1.3. Gap"
// yields Number 1 and Rest "Gap".
func ParsePrefix(title string) (Prefix, bool) {
	m := numberPrefix.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return Prefix{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Prefix{}, false
	}
	return Prefix{Number: n, Dotted: m[1] + m[2], Rest: m[3]}, true
}

// AssignFilenames sets Filename on every section in a single forward pass.
//
// Numbered titles keep their own number. The first unnumbered section gets
// 00. Any later unnumbered section continues after the highest number seen
// so far, or falls back to its position when nothing was numbered yet.
// Collisions are left for the quality checker to report.
func AssignFilenames(sections []*Section) {
	highest, seen := 0, false
	for i, s := range sections {
		var number int
		stem := s.Title

		if p, ok := ParsePrefix(s.Title); ok {
			number, stem = p.Number, p.Rest
			if !seen || p.Number > highest {
				highest = p.Number
			}
			seen = true
		} else {
			switch {
			case i == 0:
				number = 0
			case !seen:
				number = i
			default:
				number = highest + 1
			}
		}

		s.Filename = Filename(number, stem)
	}
}

// Filename formats "<nn>-<kebab>.md".
func Filename(number int, title string) string {
	stem := Kebab(title)
	if stem == "" {
		stem = "section"
	}
	return fmt.Sprintf("%02d-%s.md", number, stem)
}

// Kebab lowercases text, drops everything except word characters, whitespace
// and hyphens, and joins the words with single hyphens.
func Kebab(text string) string {
	s := strings.ToLower(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Variation_Selector, r):
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.In(r, unicode.Mn, unicode.Mc):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
