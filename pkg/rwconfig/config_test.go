package rwconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-labs/asyncrewrite/pkg/rwconfig"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := rwconfig.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Rewrite.DebugLevel)
	assert.Equal(t, "stdout", cfg.Rewrite.Output)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	configContent := `
rewrite:
  debug_level: "verbose"
  output: "/tmp/out.js"

logging:
  level: "debug"
  format: "json"
`

	path := filepath.Join(t.TempDir(), "asyncrewrite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o600))

	cfg, err := rwconfig.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "verbose", cfg.Rewrite.DebugLevel)
	assert.Equal(t, "/tmp/out.js", cfg.Rewrite.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigRejectsInvalidDebugLevel(t *testing.T) {
	t.Parallel()

	configContent := `
rewrite:
  debug_level: "chatty"
`

	path := filepath.Join(t.TempDir(), "asyncrewrite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o600))

	_, err := rwconfig.LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, rwconfig.ErrInvalidDebugLevel)
}

func TestLoadConfigRejectsEmptyOutput(t *testing.T) {
	t.Parallel()

	configContent := `
rewrite:
  output: ""
`

	path := filepath.Join(t.TempDir(), "asyncrewrite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o600))

	_, err := rwconfig.LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, rwconfig.ErrInvalidOutput)
}
