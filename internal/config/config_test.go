package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "API_ADDR", "DASHBOARD_ADDR", "CODESPACE_NAME", "OCTOFIT_API_URL", "OCTOFIT_API_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, ":8000", cfg.Server.APIAddr)
	assert.Equal(t, ":3000", cfg.Server.DashboardAddr)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "fit")
	t.Setenv("CODESPACE_NAME", "octo-space")
	t.Setenv("OCTOFIT_API_URL", "")
	t.Setenv("OCTOFIT_API_TIMEOUT", "3s")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://octo-space-8000.app.github.dev", cfg.APIBaseURL())
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
	assert.True(t, cfg.Log.Development)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Contains(t, cfg.Database.DSN(), "dbname=fit")

	t.Setenv("OCTOFIT_API_URL", "http://api.internal:9000")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", cfg.APIBaseURL())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("OCTOFIT_API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
