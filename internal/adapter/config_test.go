package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def, cfg)
	assert.Equal(t, "ko-KR", cfg.TMDB.Language)
	assert.Equal(t, 200, cfg.Cache.MaxSize)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.ReadyWait)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`tmdb:
  api_key: from-file
  timeout: 3s
cache:
  max_size: 50
redis:
  addr: ""
ui:
  color: never
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))
	t.Setenv("CINEPICK_TMDB_LANGUAGE", "en-US")
	t.Setenv("CINEPICK_SEARCH_READY_WAIT", "2s")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.TMDB.APIKey)
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 2*time.Second, cfg.Search.ReadyWait)
	assert.Equal(t, 50, cfg.Cache.MaxSize)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL, "unset keys keep defaults")
	assert.False(t, cfg.DocStoreEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb: [unterminated"), 0644))

	_, err := loadConfig(viper.New(), dir)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.TMDB.APIKey = "secret"
	cfg.Cache.TTL = time.Minute
	cfg.User.ID = "u-42"

	require.NoError(t, saveConfig(viper.New(), cfg, dir))

	loaded, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TMDB.APIKey = "k"
	cfg.UI.Color = "sometimes"
	assert.Error(t, cfg.Validate())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestSetupLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cinepick.log")
	logger, closeLog, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)

	logger.Debug("hello", "titleID", 7)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"titleID":7`)
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	logger, closeLog, err := SetupLogger(&LoggingConfig{})
	require.NoError(t, err)
	logger.Info("discarded")
	assert.NoError(t, closeLog())
}
