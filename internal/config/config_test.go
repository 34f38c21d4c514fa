package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/rewards.csv", cfg.DataFile)
	assert.Equal(t, "data/caskwatch.db", cfg.DBFile)
	assert.Equal(t, "https://runescape.wiki/w", cfg.PriceBaseURL)
	assert.Equal(t, 10*time.Second, cfg.PriceTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8000", "null"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("DB_FILE", "/tmp/other.db")
	t.Setenv("PRICE_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "/tmp/other.db", cfg.DBFile)
	assert.Equal(t, 3*time.Second, cfg.PriceTimeout)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}
