package config

import (
	"os"
	"path/filepath"
	"testing"

	ferrors "git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultTOCFilename, cfg.Output.TOCFilename)
	assert.Equal(t, DefaultMinContentBytes, cfg.Quality.MinContentBytes)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.False(t, cfg.Output.Frontmatter)
	require.NoError(t, Validate(cfg))
}

func TestParse_NormalizesAndDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
output:
  directory: "  ./out  "
  frontmatter: true
logging:
  level: " DEBUG "
  format: JSON
`))
	require.NoError(t, err)
	assert.Equal(t, "./out", cfg.Output.Directory)
	assert.True(t, cfg.Output.Frontmatter)
	assert.Equal(t, DefaultTOCFilename, cfg.Output.TOCFilename)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("MDSPLIT_TEST_OUT", "/tmp/split")
	cfg, err := Parse([]byte("output:\n  directory: ${MDSPLIT_TEST_OUT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/split", cfg.Output.Directory)
}

func TestParse_UnknownLevelFallsBackToInfo(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: chatty\n"))
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"nested toc filename": "output:\n  toc_filename: docs/toc.md\n",
		"non-markdown toc":    "output:\n  toc_filename: toc.txt\n",
		"negative min bytes":  "quality:\n  min_content_bytes: -5\n",
		"malformed yaml":      "output: [\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTOCFilename, cfg.Output.TOCFilename)

	_, err = Load("nope.yaml")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("MDSPLIT_DOTENV_DIR=from-dotenv\n"), 0o600))
	require.NoError(t, os.WriteFile("cfg.yaml", []byte("output:\n  directory: ${MDSPLIT_DOTENV_DIR}\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MDSPLIT_DOTENV_DIR") })

	cfg, err := Load("cfg.yaml")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Output.Directory)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdsplit.yaml")
	require.NoError(t, Init(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "./split", cfg.Output.Directory)
	assert.True(t, cfg.Output.Report)

	err = Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))
}

func TestLogLevel_SlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", NormalizeLogLevel("debug").SlogLevel().String())
	assert.Equal(t, "WARN", NormalizeLogLevel("Warning").SlogLevel().String())
	assert.Equal(t, "INFO", NormalizeLogLevel("").SlogLevel().String())
	assert.Equal(t, LogFormatText, NormalizeLogFormat("yaml"))
}
