package config

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewEnum("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel converts the level for slog handlers.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewEnum("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat maps raw to a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// normalize case-folds enumerations and trims paths. It returns a warning
// for every value it had to change.
func normalize(cfg *Config) []string {
	var warnings []string

	if cfg.Logging.Level != "" {
		r := logLevelNormalizer.Resolve("logging.level", string(cfg.Logging.Level))
		if r.Changed {
			warnings = append(warnings, r.Warning)
		}
		cfg.Logging.Level = r.Value
	}
	if cfg.Logging.Format != "" {
		r := logFormatNormalizer.Resolve("logging.format", string(cfg.Logging.Format))
		if r.Changed {
			warnings = append(warnings, r.Warning)
		}
		cfg.Logging.Format = r.Value
	}

	cfg.Output.Directory = strings.TrimSpace(cfg.Output.Directory)
	cfg.Output.TOCFilename = strings.TrimSpace(cfg.Output.TOCFilename)
	return warnings
}
