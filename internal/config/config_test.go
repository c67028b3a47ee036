package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.GeminiModel)
	assert.Positive(t, cfg.DefaultRadiusKm)
	assert.Positive(t, cfg.SessionTTLHours)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("GEMINI_API_KEY", "test-key-123")
	t.Setenv("DEFAULT_RADIUS_KM", "25")
	t.Setenv("CARWISE_TEST_MODE", "1")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "test-key-123", cfg.GeminiAPIKey)
	assert.Equal(t, 25, cfg.DefaultRadiusKm)
	assert.True(t, cfg.TestMode)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("DEFAULT_RADIUS_KM", "not-a-number")

	cfg := Load()

	assert.Equal(t, 10, cfg.DefaultRadiusKm)
}
