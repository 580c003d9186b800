// Package anchor derives GitHub-compatible heading anchors.
//
// Every component that needs an anchor (segmentation, rendering, the root TOC
// and the link auditor) goes through ForHeading so that all of them agree on
// the exact same character rules.
package anchor

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// Character classes kept by Slug.
var (
	// wordClasses corresponds to "word characters": letters and numbers of
	// every script. Underscore is handled separately.
	wordClasses = []*unicode.RangeTable{unicode.Letter, unicode.Number}

	// markClasses keeps combining marks (Devanagari vowel signs and the like).
	// Enclosing marks such as keycaps are dropped.
	markClasses = []*unicode.RangeTable{unicode.Mn, unicode.Mc}

	// AccentedLatin is the accented-Latin allow-list GitHub keeps verbatim.
	AccentedLatin = rangetable.New('á', 'é', 'í', 'ó', 'ú', 'ü', 'ñ')

	// separators are collapsed into a single hyphen.
	separators = rangetable.New(':')
)

// Slug converts heading text into the anchor GitHub generates for it.
//
// The steps run in a fixed order: trim, lowercase, drop emphasis and code
// markers, delete dots, delete every rune outside the allow-set, collapse
// whitespace/colon runs into one hyphen and trim hyphens. Hyphens already
// present in the text are kept as-is, so "a - b" becomes "a---b".
func Slug(text string) string {
	s := norm.NFC.String(text)
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.NewReplacer("*", "", "`", "", ".", "").Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	inSeparator := false
	for _, r := range s {
		if !allowed(r) {
			continue
		}
		if unicode.IsSpace(r) || unicode.Is(separators, r) {
			if !inSeparator {
				b.WriteByte('-')
				inSeparator = true
			}
			continue
		}
		inSeparator = false
		b.WriteRune(r)
	}

	return strings.Trim(b.String(), "-")
}

// allowed reports whether r survives the deletion step.
func allowed(r rune) bool {
	switch {
	case r == '_', r == '-':
		return true
	case unicode.IsSpace(r), unicode.Is(separators, r):
		return true
	case unicode.Is(AccentedLatin, r):
		return true
	case unicode.IsOneOf(wordClasses, r):
		return true
	case unicode.Is(unicode.Variation_Selector, r):
		return false
	case unicode.IsOneOf(markClasses, r):
		return true
	}
	return false
}

// ForHeading returns Slug(text), or a deterministic placeholder when the
// slug is empty (for example a heading made only of emoji).
//
// The placeholder is derived from the text's code points, so re-deriving it
// from rendered output always yields the same value.
func ForHeading(text string) string {
	if slug := Slug(text); slug != "" {
		return slug
	}

	trimmed := strings.TrimSpace(norm.NFC.String(text))
	if trimmed == "" {
		return "untitled"
	}

	parts := make([]string, 0, len(trimmed))
	for _, r := range trimmed {
		if unicode.IsSpace(r) || unicode.Is(unicode.Variation_Selector, r) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	if len(parts) == 0 {
		return "untitled"
	}
	return "h-" + strings.Join(parts, "-")
}
