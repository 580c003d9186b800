package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/mdsplit/internal/config"
	"git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsplit/internal/linkaudit"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
	"git.home.luguber.info/inful/mdsplit/internal/metrics"
	"git.home.luguber.info/inful/mdsplit/internal/output"
	"git.home.luguber.info/inful/mdsplit/internal/quality"
	"git.home.luguber.info/inful/mdsplit/internal/report"
	"git.home.luguber.info/inful/mdsplit/internal/splitter"
	"git.home.luguber.info/inful/mdsplit/internal/watch"
	"github.com/prometheus/client_golang/prometheus"
)

// SplitCmd implements the 'split' command.
type SplitCmd struct {
	Source          string `arg:"" help:"Markdown file to split"`
	OutputDir       string `short:"o" name:"output-dir" help:"Output directory (default: output.directory, else the source file's directory)"`
	TOCFilename     string `name:"toc-filename" help:"Root table of contents filename (default: output.toc_filename)"`
	DryRun          bool   `help:"Show what would be written without touching the filesystem"`
	Report          bool   `help:"Write split-report.md (also enabled by output.report)"`
	Frontmatter     bool   `help:"Prepend frontmatter to section files (also enabled by output.frontmatter)"`
	MinContentBytes int    `name:"min-content-bytes" help:"Flag section files smaller than this (default: quality.min_content_bytes)"`
	Format          string `short:"f" default:"text" enum:"text,json" help:"Quality report format (text or json)"`
	Strict          bool   `help:"Exit with an error when quality errors are found"`
	MetricsFile     string `name:"metrics-file" help:"Write Prometheus metrics in textfile format after each run"`
	Watch           bool   `short:"w" help:"Re-split whenever the source file changes"`
}

// splitSettings holds flag values layered over configuration.
type splitSettings struct {
	outputDir   string
	tocFilename string
	report      bool
	frontmatter bool
	quality     quality.Config
}

func (s *SplitCmd) settings(cfg *config.Config) splitSettings {
	out := splitSettings{
		outputDir:   s.OutputDir,
		tocFilename: s.TOCFilename,
		report:      s.Report || cfg.Output.Report,
		frontmatter: s.Frontmatter || cfg.Output.Frontmatter,
		quality:     quality.Config{MinContentBytes: cfg.Quality.MinContentBytes},
	}
	if out.outputDir == "" {
		out.outputDir = cfg.Output.Directory
	}
	if out.outputDir == "" {
		out.outputDir = filepath.Dir(s.Source)
	}
	if out.tocFilename == "" {
		out.tocFilename = cfg.Output.TOCFilename
	}
	if s.MinContentBytes > 0 {
		out.quality.MinContentBytes = s.MinContentBytes
	}
	return out
}

// Run executes the split command.
func (s *SplitCmd) Run(g *Global, root *CLI) error {
	settings := s.settings(root.Settings())
	if err := config.Validate(&config.Config{
		Output:  config.OutputConfig{TOCFilename: settings.tocFilename},
		Quality: config.QualityConfig{MinContentBytes: settings.quality.MinContentBytes},
	}); err != nil {
		return err
	}

	if !s.Watch {
		return s.runOnce(g.out(), settings)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := s.runOnce(g.out(), settings); err != nil {
		slog.Error("Initial split failed", logfields.Error(err))
	}

	w, err := watch.New(s.Source, func(context.Context, string) error {
		return s.runOnce(g.out(), settings)
	}, watch.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	if err := w.Run(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "watch failed").Build()
	}
	slog.Info("Stopped watching", logfields.Path(w.Path()))
	return nil
}

func (s *SplitCmd) runOnce(out io.Writer, settings splitSettings) error {
	lines, err := readSource(s.Source)
	if err != nil {
		return err
	}

	var (
		reg      *prometheus.Registry
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if s.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	res, err := splitter.Split(lines, splitter.Options{
		Logger:   slog.Default(),
		Recorder: recorder,
		Quality:  settings.quality,
	})
	if err != nil {
		return err
	}

	if res.Empty() {
		slog.Info("Nothing to split: no level-2 headings found", logfields.File(s.Source))
		return s.writeMetrics(reg)
	}

	writer := output.NewWriter(output.Options{
		Directory:   settings.outputDir,
		TOCFilename: settings.tocFilename,
		Frontmatter: settings.frontmatter,
		DryRun:      s.DryRun,
		Logger:      slog.Default(),
	})
	files, err := writer.Write(res)
	if err != nil {
		return err
	}

	if settings.report {
		summary := report.Build(s.Source, settings.tocFilename, res)
		f, err := writer.WriteFile(report.Filename, []byte(report.Markdown(summary)))
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	verb := "Created"
	if s.DryRun {
		verb = "Would create"
	}
	_, _ = fmt.Fprintf(out, "Found %d sections in %s\n", len(res.Sections), s.Source)
	for _, f := range files {
		_, _ = fmt.Fprintf(out, "%s: %s\n", verb, f.Path)
	}
	_, _ = fmt.Fprintln(out)

	logFileReferences(res.LinkIssues)

	if err := quality.NewFormatter(s.Format).Format(out, res.Quality, s.Source); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to format quality report").Build()
	}

	if err := s.writeMetrics(reg); err != nil {
		return err
	}

	if s.Strict && res.Quality.HasErrors() {
		return errors.ValidationError(fmt.Sprintf("quality check found %d error(s)", res.Quality.ErrorCount())).
			WithContext("path", s.Source).
			Build()
	}
	return nil
}

func (s *SplitCmd) writeMetrics(reg *prometheus.Registry) error {
	if reg == nil {
		return nil
	}
	if err := metrics.WriteTextfile(s.MetricsFile, reg); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics file").
			WithContext("path", s.MetricsFile).
			Build()
	}
	slog.Debug("Wrote metrics", logfields.Path(s.MetricsFile))
	return nil
}

func logFileReferences(issues []linkaudit.Issue) {
	for _, li := range issues {
		if li.Category != linkaudit.CategoryFileReference {
			continue
		}
		slog.Info("File reference may need updating",
			logfields.File(li.File),
			logfields.Line(li.Line),
			logfields.Target(li.Target))
	}
}
