package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile       = "file"
	KeyPath       = "path"
	KeySection    = "section"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyLine       = "line"
	KeyCount      = "count"
	KeyRule       = "rule"
	KeyTarget     = "target"
	KeyStrategy   = "strategy"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Strategy(s string) slog.Attr     { return slog.String(KeyStrategy, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
