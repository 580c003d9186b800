package config

import (
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "mdsplit.yaml"

// Config represents the mdsplit configuration file.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Quality QualityConfig `yaml:"quality"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls where and how split files are written.
type OutputConfig struct {
	Directory   string `yaml:"directory,omitempty"` // Empty means the source file's directory
	TOCFilename string `yaml:"toc_filename"`
	Report      bool   `yaml:"report"`      // Write split-report.md next to the output
	Frontmatter bool   `yaml:"frontmatter"` // Prepend YAML frontmatter to section files
}

// QualityConfig tunes the post-split checks.
type QualityConfig struct {
	MinContentBytes int `yaml:"min_content_bytes"`
}

// LoggingConfig controls the CLI log handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a configuration file.
//
// Environment variables from .env/.env.local are loaded first and ${VAR}
// references in the file are expanded. When path is DefaultPath and the file
// does not exist, defaults are returned; any other missing path is an error.
func Load(path string) (*Config, error) {
	if loaded := loadEnvFiles(); loaded != "" {
		slog.Debug("Loaded environment variables", slog.String("path", loaded))
	}

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes, normalises and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}

	for _, w := range normalize(&cfg) {
		slog.Warn("Config normalization", slog.String("detail", w))
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	example := Default()
	example.Output.Directory = "./split"
	example.Output.Report = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
