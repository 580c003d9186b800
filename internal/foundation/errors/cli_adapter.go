package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/mdsplit/internal/logfields"
)

// exitUnclassified is returned for errors that carry no category.
const exitUnclassified = 1

// CLIErrorAdapter turns errors returned by commands into a one-line message
// on stderr and a process exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates an adapter. A nil logger means slog.Default().
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, stderr: os.Stderr, exit: os.Exit}
}

// ExitCodeFor maps err to an exit code: 0 for nil, the category's code for
// classified errors and 1 otherwise.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	ce, ok := AsClassified(err)
	if !ok {
		return exitUnclassified
	}
	if code, known := exitCodes[ce.Category()]; known {
		return code
	}
	return exitUnclassified
}

// FormatError renders err for the terminal. Internal and runtime failures
// are summarised unless verbose is set.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	ce, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return ce.Error()
	}
	if ce.Category() == CategoryInternal || ce.Category() == CategoryRuntime {
		return "Internal error occurred (use -v for details)"
	}

	msg := "Error: " + ce.Message()
	if path, found := ce.Context().GetString("path"); found {
		msg += " (" + path + ")"
	}
	if cause := ce.Cause(); cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}

// HandleError logs err when appropriate, prints it and exits. It is a no-op
// for nil.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.verbose || isFatalOrUnclassified(err) {
		a.log(err)
	}
	_, _ = fmt.Fprintln(a.stderr, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func isFatalOrUnclassified(err error) bool {
	ce, ok := AsClassified(err)
	return !ok || ce.Severity() == SeverityFatal
}

func (a *CLIErrorAdapter) log(err error) {
	ce, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", logfields.Error(err))
		return
	}

	attrs := []slog.Attr{slog.String("category", string(ce.Category()))}
	if path, found := ce.Context().GetString("path"); found {
		attrs = append(attrs, logfields.Path(path))
	}
	if cause := ce.Cause(); cause != nil {
		attrs = append(attrs, logfields.Error(cause))
	}
	a.logger.LogAttrs(context.Background(), severityLevel(ce.Severity()), ce.Message(), attrs...)
}

func severityLevel(s ErrorSeverity) slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
