// Package splitter runs the whole split pipeline over the lines of one
// document: segment, name, render, assemble the root TOC, audit links and
// check quality. It never touches the filesystem.
package splitter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsplit/internal/linkaudit"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
	"git.home.luguber.info/inful/mdsplit/internal/markdown"
	"git.home.luguber.info/inful/mdsplit/internal/metrics"
	"git.home.luguber.info/inful/mdsplit/internal/quality"
	"git.home.luguber.info/inful/mdsplit/internal/render"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
	"git.home.luguber.info/inful/mdsplit/internal/section"
	"git.home.luguber.info/inful/mdsplit/internal/tocdetect"
)

// Stage names used for logging and metrics.
const (
	StageTokenize = "tokenize"
	StageSegment  = "segment"
	StageName     = "name"
	StageRender   = "render"
	StageTOC      = "toc"
	StageAudit    = "audit"
	StageQuality  = "quality"
)

// Options configures a split. The zero value is usable.
type Options struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
	Quality  quality.Config
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Recorder == nil {
		o.Recorder = metrics.NoopRecorder{}
	}
	if o.Quality.MinContentBytes <= 0 {
		o.Quality.MinContentBytes = quality.DefaultMinContentBytes
	}
	return o
}

// Features describes what the source document contains.
type Features struct {
	HasCodeBlocks       bool `json:"has_code_blocks"`
	HasImages           bool `json:"has_images"`
	HasNumberedSections bool `json:"has_numbered_sections"`
}

// Result is everything one split produces.
type Result struct {
	Sections   []*section.Section
	Documents  []render.Document
	RootTOC    string
	LinkIssues []linkaudit.Issue
	Quality    *quality.Report
	Features   Features
	SourceTOC  *tocdetect.Result
}

// Empty reports whether the document had no top-level sections.
func (r *Result) Empty() bool {
	return r == nil || len(r.Sections) == 0
}

// LinkIssuesFor returns the link issues reported against file.
func (r *Result) LinkIssuesFor(file string) []linkaudit.Issue {
	var out []linkaudit.Issue
	for _, li := range r.LinkIssues {
		if li.File == file {
			out = append(out, li)
		}
	}
	return out
}

type pipeline struct {
	opts Options
}

// Split partitions lines into per-section documents.
//
// A document without depth-2 headings yields an empty Result and no error.
// Link and quality findings are reported on the Result and never fail the
// split.
func Split(lines []string, opts Options) (*Result, error) {
	p := &pipeline{opts: opts.withDefaults()}
	return p.run(lines)
}

// Plan segments and names sections without rendering anything.
func Plan(lines []string) []*section.Section {
	sections := section.Segment(scan.Lines(lines))
	section.AssignFilenames(sections)
	return sections
}

func (p *pipeline) run(lines []string) (*Result, error) {
	start := time.Now()
	rec := p.opts.Recorder
	res := &Result{}

	var tokens []scan.Line
	p.stage(StageTokenize, func() error {
		tokens = scan.Lines(lines)
		res.Features.HasCodeBlocks = hasFence(tokens)
		if toc, ok := tocdetect.Detect(lines); ok {
			res.SourceTOC = &toc
			p.opts.Logger.Debug("Source table of contents detected",
				logfields.Strategy(string(toc.Strategy)),
				logfields.Line(toc.StartLine),
				logfields.Count(len(toc.Entries)))
		}
		return nil
	})
	p.logFencedHeadings(tokens)

	p.stage(StageSegment, func() error {
		res.Sections = section.Segment(tokens)
		return nil
	})
	rec.SetSections(len(res.Sections))

	if res.Empty() {
		p.opts.Logger.Debug("No top-level sections found")
		rec.IncSplitOutcome(metrics.ResultEmpty)
		rec.ObserveSplitDuration(time.Since(start))
		return res, nil
	}

	p.stage(StageName, func() error {
		section.AssignFilenames(res.Sections)
		for _, s := range res.Sections {
			if _, ok := section.ParsePrefix(s.Title); ok {
				res.Features.HasNumberedSections = true
			}
		}
		return nil
	})

	p.stage(StageRender, func() error {
		res.Documents = make([]render.Document, 0, len(res.Sections))
		for _, s := range res.Sections {
			res.Documents = append(res.Documents, render.Document{Section: s, Body: render.Section(lines, s)})
			p.opts.Logger.Debug("Rendered section",
				logfields.Section(s.Title),
				logfields.File(s.Filename),
				logfields.Count(len(s.Subsections)))
		}
		return nil
	})

	p.stage(StageTOC, func() error {
		res.RootTOC = render.RootTOC(res.Sections)
		return nil
	})

	if err := p.stage(StageAudit, func() error {
		links, err := markdown.ExtractLinks([]byte(strings.Join(lines, "\n")))
		if err != nil {
			return err
		}
		for _, l := range links {
			if l.IsImage() {
				res.Features.HasImages = true
				break
			}
		}

		files := make([]linkaudit.File, 0, len(res.Documents))
		for _, d := range res.Documents {
			files = append(files, linkaudit.File{Name: d.Section.Filename, Body: d.Body})
		}
		res.LinkIssues, err = linkaudit.New(p.opts.Logger).Audit(files)
		return err
	}); err != nil {
		rec.IncSplitOutcome(metrics.ResultFailed)
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "link audit failed").Build()
	}

	if err := p.stage(StageQuality, func() error {
		report, err := quality.NewChecker(p.opts.Quality, p.opts.Logger).Check(res.Documents, res.RootTOC)
		res.Quality = report
		return err
	}); err != nil {
		rec.IncSplitOutcome(metrics.ResultFailed)
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "quality check failed").Build()
	}

	p.recordIssues(res)
	rec.ObserveSplitDuration(time.Since(start))
	return res, nil
}

// stage times fn, logs the duration and records the outcome.
func (p *pipeline) stage(name string, fn func() error) error {
	started := time.Now()
	err := fn()
	d := time.Since(started)

	p.opts.Recorder.ObserveStageDuration(name, d)
	if err != nil {
		p.opts.Recorder.IncStageResult(name, metrics.ResultFailed)
		p.opts.Logger.Debug("Stage failed", logfields.Stage(name), logfields.Error(err))
		return err
	}
	p.opts.Recorder.IncStageResult(name, metrics.ResultSuccess)
	p.opts.Logger.Debug("Stage complete",
		logfields.Stage(name),
		logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}

func (p *pipeline) logFencedHeadings(tokens []scan.Line) {
	if !p.opts.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, t := range tokens {
		if t.InFence && !t.Fence {
			if _, ok := scan.ParseHeading(t.Raw); ok {
				p.opts.Logger.Debug("Skipping heading inside code fence", logfields.Line(t.Number))
			}
		}
	}
}

func (p *pipeline) recordIssues(res *Result) {
	rec := p.opts.Recorder

	byCategory := map[linkaudit.Category]int{}
	for _, li := range res.LinkIssues {
		byCategory[li.Category]++
	}
	for _, c := range []linkaudit.Category{linkaudit.CategoryBrokenAnchor, linkaudit.CategoryFileReference} {
		rec.AddLinkIssues(string(c), byCategory[c])
	}

	rec.AddQualityIssues("error", res.Quality.ErrorCount())
	rec.AddQualityIssues("warning", res.Quality.WarningCount())
	rec.AddQualityIssues("info", res.Quality.InfoCount())

	switch {
	case res.Quality.HasErrors(), res.Quality.HasWarnings(), len(res.LinkIssues) > 0:
		rec.IncSplitOutcome(metrics.ResultWarning)
	default:
		rec.IncSplitOutcome(metrics.ResultSuccess)
	}
}

func hasFence(tokens []scan.Line) bool {
	for _, t := range tokens {
		if t.Fence {
			return true
		}
	}
	return false
}
