package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://pixabay.com/api/", cfg.Provider.BaseURL)
	assert.Equal(t, "photo", cfg.Provider.ImageType)
	assert.Equal(t, "horizontal", cfg.Provider.Orientation)
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 4, cfg.UI.GridColumns)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "picta.yaml")
	writeFile(t, path, `
provider:
  api_key: abc123
  orientation: all
  safe_search: true
  timeout: 3s
ui:
  grid_columns: 3
  toast_duration: 1500ms
history:
  enabled: false
  limit: 10
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.Provider.APIKey)
	assert.Equal(t, "all", cfg.Provider.Orientation)
	assert.Equal(t, "photo", cfg.Provider.ImageType, "unset keys keep defaults")
	assert.True(t, cfg.Provider.SafeSearch)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 3, cfg.UI.GridColumns)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.ToastDuration)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "provider:\n  api_key: from-file\n")

	t.Setenv("PICTA_PROVIDER_API_KEY", "from-env")
	t.Setenv("PICTA_UI_GRID_COLUMNS", "6")
	t.Setenv("PICTA_HISTORY_ENABLED", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Provider.APIKey)
	assert.Equal(t, 6, cfg.UI.GridColumns)
	assert.False(t, cfg.History.Enabled)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		writeFile(t, path, "provider: [unclosed\n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := map[string]string{
			"zero columns":   "ui:\n  grid_columns: 0\n",
			"negative limit": "history:\n  limit: -1\n",
			"unknown level":  "logging:\n  level: chatty\n",
		}
		for name, content := range tests {
			path := filepath.Join(dir, name+".yaml")
			writeFile(t, path, content)
			_, err := LoadConfig(path)
			assert.Error(t, err, name)
		}
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Provider.APIKey = "saved-key"
	cfg.UI.GridColumns = 5
	cfg.UI.ToastDuration = 2 * time.Second

	written, err := SaveConfig(cfg, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.Provider.APIKey)
	assert.Equal(t, 5, loaded.UI.GridColumns)
	assert.Equal(t, 2*time.Second, loaded.UI.ToastDuration)
	assert.Equal(t, cfg.History, loaded.History)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/logs/picta.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "picta.log"), got)

	got, err = ExpandHome("/var/log/picta.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/picta.log", got)
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "picta.log")

	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello", "query", "cats")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"query":"cats"`)
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	logger, closer, err := SetupLogger(&LoggingConfig{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "ERROR", parseLogLevel("ERROR").String())
	assert.Equal(t, "INFO", parseLogLevel("").String())
}
