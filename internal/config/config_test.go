package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATA_DIR", "")

	cfg, err := LoadServer()
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.ListenAddr)
	require.Equal(t, "data", cfg.DataDir)
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("DATA_DIR", "/var/lib/eco")

	cfg, err := LoadServer()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "/var/lib/eco", cfg.DataDir)
}

func TestLoadBotRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := LoadBot()
	require.Error(t, err)
}

func TestLoadBotDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	cfg, err := LoadBot()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	require.Equal(t, 60*time.Second, cfg.CacheTTL)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadBotParsesDurations(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CACHE_TTL_SECONDS", "15")
	t.Setenv("SESSION_TTL_MINUTES", "5")

	cfg, err := LoadBot()
	require.NoError(t, err)
	require.Equal(t, 15*time.Second, cfg.CacheTTL)
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestBadDurationsFallBackToDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("SESSION_TTL_MINUTES", "-3")

	cfg, err := LoadBot()
	require.NoError(t, err)
	require.Equal(t, 60*time.Second, cfg.CacheTTL)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
