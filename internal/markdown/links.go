package markdown

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a Markdown body.
//
// Line is 1-based. For reference definitions and autolinks it is the line the
// construct starts on; for inline links and images it is the line holding the
// link text.
type Link struct {
	Kind        LinkKind
	Destination string
	Text        string
	Line        int
}

// IsImage reports whether the link embeds an image.
func (l Link) IsImage() bool {
	return l.Kind == LinkKindImage
}
