package quality

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats a quality report for output.
type Formatter interface {
	Format(w io.Writer, report *Report, source string) error
}

// TextFormatter formats reports as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs the report in human-readable text format. Issues keep the
// order they were found in.
func (f *TextFormatter) Format(w io.Writer, report *Report, source string) error {
	if _, err := fmt.Fprintf(w, "Quality check for: %s\n", source); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}

	for _, issue := range report.Issues {
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %d files checked\n", report.FilesTotal); err != nil {
		return err
	}
	if n := report.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := report.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s\n", n, pluralize(n)); err != nil {
			return err
		}
	}

	switch {
	case report.HasErrors():
		_, err := fmt.Fprintln(w, "❌ Split output has errors.")
		return err
	case report.HasWarnings():
		_, err := fmt.Fprintln(w, "⚠️  Split output has warnings.")
		return err
	default:
		_, err := fmt.Fprintln(w, "✨ All quality checks passed!")
		return err
	}
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	var icon string
	switch issue.Severity {
	case SeverityError:
		icon = "✗"
	case SeverityWarning:
		icon = "⚠"
	case SeverityInfo:
		icon = "ℹ"
	}

	where := issue.File
	if where == "" {
		where = "(document)"
	}
	if issue.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, issue.Line)
	}

	_, err := fmt.Fprintf(w, "%s %s [%s] %s\n", icon, where, issue.Rule, issue.Message)
	return err
}

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Source       string  `json:"source"`
	FilesTotal   int     `json:"files_total"`
	ErrorCount   int     `json:"error_count"`
	WarningCount int     `json:"warning_count"`
	InfoCount    int     `json:"info_count"`
	Issues       []Issue `json:"issues"`
}

// Format outputs the report in JSON format.
func (f *JSONFormatter) Format(w io.Writer, report *Report, source string) error {
	output := JSONOutput{
		Source:       source,
		FilesTotal:   report.FilesTotal,
		ErrorCount:   report.ErrorCount(),
		WarningCount: report.WarningCount(),
		InfoCount:    report.InfoCount(),
		Issues:       report.Issues,
	}
	if output.Issues == nil {
		output.Issues = []Issue{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
