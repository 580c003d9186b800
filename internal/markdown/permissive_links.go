package markdown

import (
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/scan"
)

// extractPermissiveLinks recovers links whose destination contains
// whitespace. CommonMark rejects those, but hand-written documents use them
// for paths like "../My Guide.md". Per line, images come before links and
// links before a reference definition.
func extractPermissiveLinks(body []byte) []Link {
	var out []Link
	for _, line := range scan.Lines(strings.Split(string(body), "\n")) {
		if line.InFence || isIndentedCode(line.Raw) {
			continue
		}
		text := dropCodeSpans(line.Raw)
		lineNo := line.Number

		var images, inline []Link
		for _, m := range bracketLinks(text) {
			if !strings.ContainsAny(m.dest, " \t") {
				continue
			}
			l := Link{Kind: LinkKindInline, Destination: m.dest, Text: m.text, Line: lineNo}
			if m.image {
				l.Kind = LinkKindImage
				images = append(images, l)
			} else {
				inline = append(inline, l)
			}
		}
		out = append(out, images...)
		out = append(out, inline...)

		if def, ok := spacedDefinition(text, lineNo); ok {
			out = append(out, def)
		}
	}
	return out
}

func isIndentedCode(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

type bracketLink struct {
	text  string
	dest  string
	image bool
}

// bracketLinks finds every [text](dest) and ![text](dest) on a line.
// Destinations run to the first closing parenthesis.
func bracketLinks(line string) []bracketLink {
	var found []bracketLink
	for pos := 0; pos < len(line); {
		mid := strings.Index(line[pos:], "](")
		if mid < 0 {
			break
		}
		mid += pos

		open := strings.LastIndexByte(line[:mid], '[')
		closeRel := strings.IndexByte(line[mid+2:], ')')
		if open < pos || closeRel < 0 {
			pos = mid + 2
			continue
		}
		end := mid + 2 + closeRel

		found = append(found, bracketLink{
			text:  line[open+1 : mid],
			dest:  withoutTitle(line[mid+2 : end]),
			image: open > 0 && line[open-1] == '!',
		})
		pos = end + 1
	}
	return found
}

// spacedDefinition parses "[label]: dest" when dest contains whitespace.
// Footnotes ("[^1]: ...") are skipped.
func spacedDefinition(line string, lineNo int) (Link, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "[^") {
		return Link{}, false
	}
	label, rest, ok := strings.Cut(trimmed[1:], "]:")
	if !ok {
		return Link{}, false
	}
	dest := withoutTitle(rest)
	if !strings.ContainsAny(dest, " \t") {
		return Link{}, false
	}
	return Link{Kind: LinkKindReferenceDefinition, Destination: dest, Text: label, Line: lineNo}, true
}

// withoutTitle drops a trailing quoted link title.
func withoutTitle(dest string) string {
	dest = strings.TrimSpace(dest)
	for _, sep := range []string{` "`, ` '`} {
		if i := strings.Index(dest, sep); i >= 0 {
			return strings.TrimSpace(dest[:i])
		}
	}
	return dest
}

// dropCodeSpans removes backtick code spans, delimiters included. An
// unmatched run of backticks is kept as text.
func dropCodeSpans(s string) string {
	if strings.IndexByte(s, '`') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '`' {
			b.WriteByte(s[i])
			i++
			continue
		}
		n := 1
		for i+n < len(s) && s[i+n] == '`' {
			n++
		}
		delim := s[i : i+n]
		if j := strings.Index(s[i+n:], delim); j >= 0 {
			i += n + j + n
			continue
		}
		b.WriteString(delim)
		i += n
	}
	return b.String()
}
