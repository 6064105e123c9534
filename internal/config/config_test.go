package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.Model)
	assert.Equal(t, 10*time.Second, cfg.Groq.Timeout)
	assert.Empty(t, cfg.Groq.APIKey, "missing API key must not be an error")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  address: ":8085"
  corsOrigin: "https://taller.example.com"
prometheus:
  baseURL: "http://prom:9090"
  timeout: 2s
logging:
  level: debug
  json: true
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8085", cfg.Server.Address)
	assert.Equal(t, "https://taller.example.com", cfg.Server.CORSOrigin)
	assert.Equal(t, "http://prom:9090", cfg.Prometheus.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Prometheus.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("PROMETHEUS_URL", "http://prom.internal:9090")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("AIOPS_LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.Server.Address)
	assert.Equal(t, "http://prom.internal:9090", cfg.Prometheus.BaseURL)
	assert.Equal(t, "gsk_test", cfg.Groq.APIKey)
	assert.True(t, cfg.Logging.JSON)
}

func TestExplicitAddressWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("AIOPS_SERVER_ADDRESS", ":7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
}
