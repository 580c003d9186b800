package quality

import "strings"

// Severity indicates the importance level of a quality issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues worth a look that do not make the output wrong.
	SeverityWarning
	// SeverityError indicates output that is incomplete or has unresolvable links.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the severity in lowercase for JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// Rule identifiers.
const (
	RuleTitleMarker       = "title-marker"
	RuleLocalTOC          = "local-toc"
	RuleHeadingJump       = "heading-jump"
	RuleBrokenAnchor      = "broken-anchor"
	RuleContentSize       = "content-size"
	RuleDuplicateFilename = "duplicate-filename"
	RuleNumbering         = "numbering"
	RuleRootTOC           = "root-toc"
	RuleMissingFile       = "missing-file"
)

// Issue represents a single quality problem.
type Issue struct {
	File     string   `json:"file,omitempty"` // Section filename, empty for document-level issues
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"` // 0 if file-level issue
}

// Report aggregates the issues of one run.
type Report struct {
	Issues     []Issue `json:"issues"`
	FilesTotal int     `json:"files_total"`
}

// Add appends issues to the report.
func (r *Report) Add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// HasErrors returns true if any error-level issues exist.
func (r *Report) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Report) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Report) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Report) WarningCount() int { return r.count(SeverityWarning) }

// InfoCount returns the number of info-level issues.
func (r *Report) InfoCount() int { return r.count(SeverityInfo) }

func (r *Report) count(s Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// ForFile returns the issues reported against file.
func (r *Report) ForFile(file string) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.File == file {
			out = append(out, issue)
		}
	}
	return out
}

// Config tunes the checker.
type Config struct {
	// MinContentBytes is the smallest trimmed body not reported as too short.
	MinContentBytes int
}

// DefaultMinContentBytes is used when Config.MinContentBytes is zero.
const DefaultMinContentBytes = 100

// DefaultConfig returns the checker defaults.
func DefaultConfig() Config {
	return Config{MinContentBytes: DefaultMinContentBytes}
}
