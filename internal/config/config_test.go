package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("TIMEZONE", "UTC")

	cfg := Load()
	require.Equal(t, "sqlite", cfg.StoreBackend)
	require.Equal(t, "./data/ecoplay.db", cfg.SQLitePath)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Equal(t, time.UTC, cfg.Location)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SHOW_TYPING", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("TIMEZONE", "Asia/Jakarta")

	cfg := Load()
	require.Equal(t, "redis", cfg.StoreBackend)
	require.Equal(t, 3, cfg.RedisDB)
	require.True(t, cfg.ShowTyping)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, "Asia/Jakarta", cfg.Location.String())
}

func TestGetenvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")

	require.Equal(t, 7, getenvInt("X_INT", 7))
	require.False(t, getenvBool("X_BOOL", false))
	require.Equal(t, "d", getenv("X_MISSING_KEY", "d"))
}

func TestLoad_UnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg := Load()
	require.Equal(t, time.Local, cfg.Location)
}
