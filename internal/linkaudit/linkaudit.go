// Package linkaudit re-derives anchors from rendered section files and flags
// links that no longer resolve after splitting.
package linkaudit

import (
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/anchor"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
	"git.home.luguber.info/inful/mdsplit/internal/markdown"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
	"git.home.luguber.info/inful/mdsplit/internal/util/sets"
)

// Category classifies a link issue.
type Category string

const (
	// CategoryBrokenAnchor marks an in-file anchor with no matching heading.
	CategoryBrokenAnchor Category = "broken-anchor"
	// CategoryFileReference marks a relative document reference that may
	// need updating now that the content lives in a different file.
	CategoryFileReference Category = "file-reference"
)

// Issue is a single link finding. It never blocks output.
type Issue struct {
	Category Category `json:"category"`
	File     string   `json:"file"`
	Text     string   `json:"text"`
	Target   string   `json:"target"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// File is a rendered document to audit.
type File struct {
	Name string
	Body string
}

var docExtensions = []string{".md", ".markdown", ".mdx"}

// Auditor checks links in rendered files.
type Auditor struct {
	logger *slog.Logger
}

// New returns an Auditor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{logger: logger}
}

// Audit checks every file in order and returns the issues in file order.
func (a *Auditor) Audit(files []File) ([]Issue, error) {
	var issues []Issue
	for _, f := range files {
		found, err := a.AuditFile(f.Name, f.Body)
		if err != nil {
			return nil, fmt.Errorf("audit %s: %w", f.Name, err)
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// AuditFile checks the links in a single rendered file against the anchors
// of that same file. Cross-file anchors are never resolved.
func (a *Auditor) AuditFile(name, body string) ([]Issue, error) {
	links, err := markdown.ExtractLinks([]byte(body))
	if err != nil {
		return nil, err
	}
	anchors := Anchors(scan.Lines(scan.SplitLines(body)))

	var issues []Issue
	for _, l := range withoutUsedDefinitions(links) {
		target := strings.TrimSpace(l.Destination)
		switch {
		case strings.HasPrefix(target, "#"):
			if resolves(anchors, target[1:]) {
				continue
			}
			issues = append(issues, Issue{
				Category: CategoryBrokenAnchor,
				File:     name,
				Text:     l.Text,
				Target:   target,
				Line:     l.Line,
				Message:  fmt.Sprintf("anchor %q not found in %s", target, name),
			})
		case IsFileReference(target):
			issues = append(issues, Issue{
				Category: CategoryFileReference,
				File:     name,
				Text:     l.Text,
				Target:   target,
				Line:     l.Line,
				Message:  fmt.Sprintf("reference to %q may need updating", target),
			})
		default:
			continue
		}
		a.logger.Debug("Link issue",
			logfields.File(name),
			logfields.Target(target),
			logfields.Line(l.Line))
	}
	return issues, nil
}

// withoutUsedDefinitions drops reference definitions whose destination is
// already reported through a resolved usage, so each link is audited once.
// Unused definitions are kept.
func withoutUsedDefinitions(links []markdown.Link) []markdown.Link {
	used := sets.New[string]()
	for _, l := range links {
		if l.Kind != markdown.LinkKindReferenceDefinition {
			used.Add(l.Destination)
		}
	}
	out := links[:0:0]
	for _, l := range links {
		if l.Kind == markdown.LinkKindReferenceDefinition && used.Has(l.Destination) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Anchors returns the anchor of every heading outside code fences.
func Anchors(lines []scan.Line) sets.Set[string] {
	set := sets.New[string]()
	for _, line := range lines {
		if line.InFence || line.Heading == nil {
			continue
		}
		set.Add(anchor.ForHeading(line.Heading.Text))
	}
	return set
}

func resolves(anchors sets.Set[string], fragment string) bool {
	if anchors.Has(fragment) {
		return true
	}
	decoded, err := url.PathUnescape(fragment)
	if err != nil || decoded == fragment {
		return false
	}
	return anchors.Has(decoded)
}

// IsFileReference reports whether target points at another local document.
//
// Targets with a URL scheme or a protocol-relative prefix are never file
// references. Otherwise a target counts when it is explicitly relative
// ("./", "../") or when its path ends in a document extension.
func IsFileReference(target string) bool {
	if target == "" || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "//") {
		return false
	}
	if u, err := url.Parse(target); err == nil && u.Scheme != "" {
		return false
	}
	if strings.Contains(target, ":") && !strings.ContainsAny(strings.SplitN(target, ":", 2)[0], "/.#?") {
		// Scheme-like prefix that url.Parse rejected.
		return false
	}
	if strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../") {
		return true
	}

	p := target
	if i := strings.IndexAny(p, "#?"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(path.Ext(p))
	for _, e := range docExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
