package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExtractLinks parses a Markdown body and extracts link-like constructs.
//
// Links inside code spans and code blocks are never reported. Results are in
// document order for AST-backed links, followed by reference definitions and
// then destinations only the permissive pass understands.
func ExtractLinks(body []byte) ([]Link, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))
	index := newLineIndex(body)

	links := make([]Link, 0)
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{
				Kind:        LinkKindAuto,
				Destination: string(node.URL(body)),
				Text:        string(node.Label(body)),
				Line:        index.line(nodeOffset(node)),
			})
		case *gmast.Image:
			links = append(links, Link{
				Kind:        LinkKindImage,
				Destination: string(node.Destination),
				Text:        inlineText(node, body),
				Line:        index.line(nodeOffset(node)),
			})
		case *gmast.Link:
			// Reference-style usages are resolved to a Link node with a Destination.
			links = append(links, Link{
				Kind:        LinkKindInline,
				Destination: string(node.Destination),
				Text:        inlineText(node, body),
				Line:        index.line(nodeOffset(node)),
			})
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	// Reference definitions live in the parse context, not in the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		label := string(ref.Label())
		links = append(links, Link{
			Kind:        LinkKindReferenceDefinition,
			Destination: string(ref.Destination()),
			Text:        label,
			Line:        definitionLine(body, label),
		})
	}

	// Goldmark follows CommonMark strictly and drops destinations containing
	// spaces; pick those up line by line.
	links = append(links, extractPermissiveLinks(body)...)

	return links, nil
}

// inlineText concatenates the literal text below n.
func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// nodeOffset returns a byte offset inside n: the first text segment below it,
// or the first line of the enclosing block.
func nodeOffset(n gmast.Node) int {
	offset := -1
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if t, ok := c.(*gmast.Text); ok && entering {
			offset = t.Segment.Start
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	if offset >= 0 {
		return offset
	}

	for p := n; p != nil; p = p.Parent() {
		if p.Type() == gmast.TypeBlock && p.Lines().Len() > 0 {
			return p.Lines().At(0).Start
		}
	}
	return 0
}

// definitionLine finds the line a reference definition for label starts on.
func definitionLine(body []byte, label string) int {
	for i, line := range bytes.Split(body, []byte("\n")) {
		trimmed := strings.TrimSpace(string(line))
		if !strings.HasPrefix(trimmed, "[") {
			continue
		}
		got, _, ok := strings.Cut(trimmed[1:], "]:")
		if ok && strings.EqualFold(strings.TrimSpace(got), label) {
			return i + 1
		}
	}
	return 0
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(body []byte) lineIndex {
	starts := lineIndex{0}
	for i, c := range body {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (idx lineIndex) line(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}
