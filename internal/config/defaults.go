package config

// Default values applied after normalization.
const (
	DefaultTOCFilename     = "00-toc.md"
	DefaultMinContentBytes = 100
)

func applyDefaults(cfg *Config) {
	if cfg.Output.TOCFilename == "" {
		cfg.Output.TOCFilename = DefaultTOCFilename
	}
	if cfg.Quality.MinContentBytes == 0 {
		cfg.Quality.MinContentBytes = DefaultMinContentBytes
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
