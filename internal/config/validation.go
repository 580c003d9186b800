package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdsplit/internal/foundation"
	ferrors "git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
)

var configValidators = foundation.NewValidatorChain(
	foundation.Check("output.toc_filename", "plain_name", "must be a plain file name",
		func(c *Config) bool {
			toc := c.Output.TOCFilename
			return toc != "" && toc == filepath.Base(toc) && !strings.ContainsAny(toc, `/\`)
		}),
	foundation.Check("output.toc_filename", "extension", "must end in .md",
		func(c *Config) bool { return strings.HasSuffix(strings.ToLower(c.Output.TOCFilename), ".md") }),
	foundation.Check("quality.min_content_bytes", "range", "must not be negative",
		func(c *Config) bool { return c.Quality.MinContentBytes >= 0 }),
)

// Validate checks a normalised configuration.
func Validate(cfg *Config) error {
	return configValidators.Validate(cfg).ToError(ferrors.CategoryConfig)
}
