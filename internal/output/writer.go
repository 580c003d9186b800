// Package output persists a split result to disk.
package output

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdsplit/internal/config"
	"git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsplit/internal/frontmatter"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
	"git.home.luguber.info/inful/mdsplit/internal/splitter"
)

const filePerm = 0o644

// Options configures a Writer.
type Options struct {
	Directory   string
	TOCFilename string // defaults to config.DefaultTOCFilename
	Frontmatter bool
	DryRun      bool
	Logger      *slog.Logger
}

// File describes one file that was (or in dry-run mode would be) written.
type File struct {
	Path    string `json:"path"`
	Section string `json:"section,omitempty"`
	Bytes   int    `json:"bytes"`
}

// Writer writes the root TOC and one file per section.
type Writer struct {
	opts Options
}

// NewWriter creates a writer for opts.
func NewWriter(opts Options) *Writer {
	if opts.TOCFilename == "" {
		opts.TOCFilename = config.DefaultTOCFilename
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Writer{opts: opts}
}

// Directory returns the output directory.
func (w *Writer) Directory() string {
	return w.opts.Directory
}

// DryRun reports whether the writer only plans writes.
func (w *Writer) DryRun() bool {
	return w.opts.DryRun
}

// Write persists res. The TOC is written first, then sections in order.
// An empty result writes nothing.
func (w *Writer) Write(res *splitter.Result) ([]File, error) {
	if res.Empty() {
		return nil, nil
	}

	if !w.opts.DryRun {
		if err := os.MkdirAll(w.opts.Directory, 0o755); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", w.opts.Directory).
				Build()
		}
	}

	files := make([]File, 0, len(res.Documents)+1)

	toc, err := w.WriteFile(w.opts.TOCFilename, []byte(res.RootTOC))
	if err != nil {
		return nil, err
	}
	files = append(files, toc)

	for i, doc := range res.Documents {
		data := []byte(doc.Body)
		if w.opts.Frontmatter {
			data, err = w.withFrontmatter(doc.Section.Filename, doc.Section.Title, i+1, doc.Body)
			if err != nil {
				return nil, err
			}
		}

		f, err := w.WriteFile(doc.Section.Filename, data)
		if err != nil {
			return nil, err
		}
		f.Section = doc.Section.Title
		files = append(files, f)
	}

	return files, nil
}

// WriteFile writes data to name inside the output directory via a
// temporary file and rename.
func (w *Writer) WriteFile(name string, data []byte) (File, error) {
	path := filepath.Join(w.opts.Directory, name)
	f := File{Path: path, Bytes: len(data)}

	if w.opts.DryRun {
		w.opts.Logger.Info("Would write file", logfields.Path(path), slog.Int("bytes", len(data)))
		return f, nil
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return File{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").
			WithContext("path", path).
			Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return File{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to rename file").
			WithContext("path", path).
			Build()
	}

	w.opts.Logger.Debug("Wrote file", logfields.Path(path), slog.Int("bytes", len(data)))
	return f, nil
}

func (w *Writer) withFrontmatter(filename, title string, weight int, body string) ([]byte, error) {
	fields, err := frontmatter.SectionFields(w.opts.TOCFilename, filename, title, weight, body)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to build frontmatter").
			WithContext("file", filename).
			Build()
	}
	data, err := frontmatter.Join(fields, []byte(body))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to serialize frontmatter").
			WithContext("file", filename).
			Build()
	}
	return data, nil
}
