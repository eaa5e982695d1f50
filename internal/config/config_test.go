package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "@hourly", cfg.WaitlistSchedule)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WINGMAN_HTTP_PORT", "9090")
	t.Setenv("WINGMAN_DB_DRIVER", "postgres")
	t.Setenv("WINGMAN_POSTGRES_DSN", "postgres://localhost/wingman")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, ":9090", cfg.GetHTTPAddr())
}

func TestResolveDefaultsRejectsMissingDSN(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "postgres"
	cfg.PostgresDSN = ""
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsRejectsUnknownDriver(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "oracle"
	assert.Error(t, cfg.ResolveDefaults())
}
