package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.APIBase)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_base: http://league.local:9000/api/\ntimeout: 15s\nlog_format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaguectl.yaml"), []byte(yaml), 0o644))
	t.Setenv("LEAGUE_LOG_LEVEL", "debug")

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "http://league.local:9000/api", cfg.APIBase)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaguectl.yaml"), []byte("api_base: http://a/api\n"), 0o644))
	t.Setenv("LEAGUE_API_BASE", "http://b/api")

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "http://b/api", cfg.APIBase)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LEAGUE_LOG_FORMAT", "xml")
	_, err := load(viper.New(), t.TempDir())
	assert.ErrorContains(t, err, "unknown log_format")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaguectl.yaml"), []byte("api_base: [\n"), 0o644))
	_, err := load(viper.New(), dir)
	assert.ErrorContains(t, err, "read config")
}
