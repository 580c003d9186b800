package commands

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsplit/internal/frontmatter"
	"git.home.luguber.info/inful/mdsplit/internal/linkaudit"
	"git.home.luguber.info/inful/mdsplit/internal/markdown"
	"git.home.luguber.info/inful/mdsplit/internal/quality"
	"git.home.luguber.info/inful/mdsplit/internal/util/sets"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Dir         string `arg:"" help:"Directory holding split output"`
	TOCFilename string `name:"toc-filename" help:"Root table of contents filename (default: output.toc_filename)"`
	Format      string `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
}

// Run checks the root TOC, the files it links to and any numbered section
// file it misses. Other Markdown in the directory, such as the source
// document split into it, is ignored. Error-level findings fail the command.
func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg := root.Settings()
	tocName := c.TOCFilename
	if tocName == "" {
		tocName = cfg.Output.TOCFilename
	}

	numbered, err := numberedFiles(c.Dir, tocName)
	if err != nil {
		return err
	}

	var findings []quality.Issue
	audited := sets.New(numbered...)
	tocPath := filepath.Join(c.Dir, tocName)
	toc, err := os.ReadFile(tocPath)
	switch {
	case os.IsNotExist(err):
		findings = append(findings, quality.MissingFile(tocName))
	case err != nil:
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read table of contents").
			WithContext("path", tocPath).
			Build()
	default:
		targets, err := tocTargets(toc)
		if err != nil {
			return errors.WrapError(err, errors.CategoryDocs, "failed to parse table of contents").
				WithContext("path", tocPath).
				Build()
		}
		for _, name := range targets {
			if _, statErr := os.Stat(filepath.Join(c.Dir, name)); statErr != nil {
				findings = append(findings, quality.MissingFile(name))
				continue
			}
			audited.Add(name)
		}
		findings = append(findings, quality.CheckRootTOC(string(toc), numbered)...)
	}

	names := sets.Sorted(audited)
	files := make([]quality.File, 0, len(names))
	for _, name := range names {
		body, err := readBody(filepath.Join(c.Dir, name))
		if err != nil {
			return err
		}
		files = append(files, quality.File{Name: name, Body: body})
	}

	checker := quality.NewChecker(quality.Config{MinContentBytes: cfg.Quality.MinContentBytes}, nil)
	rep, err := checker.CheckFiles(files)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "quality check failed").Build()
	}
	rep.Add(findings...)

	auditFiles := make([]linkaudit.File, 0, len(files))
	for _, f := range files {
		auditFiles = append(auditFiles, linkaudit.File{Name: f.Name, Body: f.Body})
	}
	issues, err := linkaudit.New(nil).Audit(auditFiles)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "link audit failed").Build()
	}
	logFileReferences(issues)

	if err := quality.NewFormatter(c.Format).Format(g.out(), rep, c.Dir); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to format quality report").Build()
	}

	if rep.HasErrors() {
		return errors.ValidationError(fmt.Sprintf("quality check found %d error(s)", rep.ErrorCount())).
			WithContext("path", c.Dir).
			Build()
	}
	return nil
}

// sectionFilename matches the "NN-stem.md" names split produces.
var sectionFilename = regexp.MustCompile(`^\d{2,}-.+\.md$`)

// numberedFiles lists the files in dir named like split output, other than
// the TOC itself, sorted.
func numberedFiles(dir, tocName string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("directory not found").WithContext("path", dir).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read directory").
			WithContext("path", dir).
			Build()
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && e.Name() != tocName && sectionFilename.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func readBody(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read file").
			WithContext("path", path).
			Build()
	}
	return string(frontmatter.Strip(data).Body), nil
}

// tocTargets returns the same-directory files the TOC links to, in link
// order without duplicates.
func tocTargets(toc []byte) ([]string, error) {
	links, err := markdown.ExtractLinks(toc)
	if err != nil {
		return nil, err
	}

	seen := sets.New[string]()
	var targets []string
	for _, l := range links {
		target, _, _ := strings.Cut(l.Destination, "#")
		if target == "" || !linkaudit.IsFileReference(target) {
			continue
		}
		if u, err := url.PathUnescape(target); err == nil {
			target = u
		}
		target = strings.TrimPrefix(target, "./")
		if strings.Contains(target, "/") || !seen.Add(target) {
			continue
		}
		targets = append(targets, target)
	}
	return targets, nil
}
