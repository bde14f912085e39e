package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "docker")
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Discord.Token)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/bot.db", cfg.Database.DSN)
	assert.Equal(t, "https://overfast-api.tekrop.fr", cfg.OverFast.BaseURL)
	assert.Equal(t, 100*time.Millisecond, cfg.OverFast.RequestDelay)
	assert.Equal(t, 10*time.Minute, cfg.Queue.UpdateInterval)
	assert.Equal(t, 24*time.Hour, cfg.Queue.MaxAge)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "docker")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=localhost user=bot dbname=owqueue")
	t.Setenv("QUEUE_UPDATE_INTERVAL", "5m")
	t.Setenv("QUEUE_MAX_AGE", "12h")
	t.Setenv("OVERFAST_REQUEST_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=bot dbname=owqueue", cfg.Database.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Queue.UpdateInterval)
	assert.Equal(t, 12*time.Hour, cfg.Queue.MaxAge)
	assert.Equal(t, 250*time.Millisecond, cfg.OverFast.RequestDelay)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("ENVIRONMENT", "docker")
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("ENVIRONMENT", "docker")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("QUEUE_UPDATE_INTERVAL", "notaduration")

	cfg, err := Load()
	require.NoError(t, err)

	// Unparseable durations fall back to the default.
	assert.Equal(t, 10*time.Minute, cfg.Queue.UpdateInterval)
}
