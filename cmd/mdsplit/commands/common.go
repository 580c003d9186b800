// Package commands implements the mdsplit command line.
package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/mdsplit/internal/config"
	"git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsplit/internal/frontmatter"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
	"git.home.luguber.info/inful/mdsplit/internal/scan"
	"github.com/alecthomas/kong"
)

// Global is bound into every command's Run method.
type Global struct {
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"mdsplit.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Split     SplitCmd     `cmd:"" help:"Split a Markdown file into one file per level-2 section"`
	Plan      PlanCmd      `cmd:"" help:"List the files a split would create without writing anything"`
	DetectTOC DetectTOCCmd `cmd:"" name:"detect-toc" help:"Report the table of contents found in a source file"`
	Check     CheckCmd     `cmd:"" help:"Re-run quality and link checks over a directory of split files"`
	Init      InitCmd      `cmd:"" help:"Write an example configuration file"`

	cfg *config.Config `kong:"-"`
}

// AfterApply loads configuration and installs the default logger once flags
// are parsed. The init command skips loading so it can create the file.
func (c *CLI) AfterApply(kctx *kong.Context) error {
	cfg := config.Default()
	if kctx == nil || kctx.Command() != "init" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	c.cfg = cfg

	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	format := cfg.Logging.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// Settings returns the loaded configuration.
func (c *CLI) Settings() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// readSource loads a Markdown file and returns its lines with leading YAML
// frontmatter removed. A leading "---" that does not open a YAML mapping is
// kept as content.
func readSource(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("source file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read source file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	doc := frontmatter.Strip(data)
	if doc.Present {
		slog.Debug("Stripped source frontmatter", logfields.Path(path), slog.Int("bytes", len(doc.Raw)))
	}
	return scan.SplitLines(string(doc.Body)), nil
}
