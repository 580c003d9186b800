// Package frontmatter reads and writes `---` delimited YAML frontmatter.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a frontmatter
// block that never closes.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

const delimiter = "---"

// Document is a Markdown file split into its frontmatter and body.
type Document struct {
	Raw     []byte // YAML without delimiters
	Body    []byte
	Present bool
}

// Split separates leading frontmatter from the body. LF and CRLF line
// endings are both accepted. Without an opening delimiter the whole input is
// the body.
func Split(content []byte) (Document, error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content}, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return Document{Raw: []byte{}, Body: rest[len(open):], Present: true}, nil
	}

	closing := []byte(nl + delimiter + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter on the final line without a newline.
		if bytes.HasSuffix(rest, []byte(nl+delimiter)) {
			idx = len(rest) - len(nl) - len(delimiter)
			return Document{Raw: rest[:idx+len(nl)], Body: []byte{}, Present: true}, nil
		}
		return Document{}, ErrMissingClosingDelimiter
	}

	return Document{
		Raw:     rest[:idx+len(nl)],
		Body:    rest[idx+len(closing):],
		Present: true,
	}, nil
}

// Fields decodes the frontmatter into a map. An absent or empty block yields
// an empty map.
func (d Document) Fields() (map[string]any, error) {
	if len(d.Raw) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(d.Raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Join prepends fields as a frontmatter block to body. Empty fields return
// body unchanged.
func Join(fields map[string]any, body []byte) ([]byte, error) {
	if len(fields) == 0 {
		return body, nil
	}
	raw, err := Serialize(fields)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(raw)+len(body)+2*len(delimiter)+2)
	out = append(out, delimiter+"\n"...)
	out = append(out, raw...)
	out = append(out, delimiter+"\n"...)
	out = append(out, body...)
	return out, nil
}

// Strip removes a leading block only when it decodes to a non-empty YAML
// mapping. An unclosed block, a block that is not a mapping, or an empty
// block leaves the whole input as body, so a leading thematic break and
// the content after it survive.
func Strip(content []byte) Document {
	doc, err := Split(content)
	if err != nil || !doc.Present {
		return Document{Body: content}
	}
	fields, err := doc.Fields()
	if err != nil || len(fields) == 0 {
		return Document{Body: content}
	}
	return doc
}
