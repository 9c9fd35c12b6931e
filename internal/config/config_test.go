package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/evergreen")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("HOME_SLUG", "")
	t.Setenv("BUNNY_STORAGE_HOSTNAME", "")

	cfg := Load()
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, int64(10*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, "home", cfg.HomeSlug)
	assert.Equal(t, "storage.bunnycdn.com", cfg.BunnyStorageHostname)
	assert.Equal(t, 10080, cfg.JWTExpiresMin)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadPanicsWithoutSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/evergreen")
	t.Setenv("JWT_SECRET", "")

	require.PanicsWithValue(t, "missing env: JWT_SECRET", func() { Load() })
}

func TestFeatureToggles(t *testing.T) {
	cfg := Config{}
	assert.False(t, cfg.CDNEnabled())
	assert.False(t, cfg.GoogleEnabled())

	cfg.BunnyStorageZone = "zone"
	cfg.BunnyStoragePassword = "pw"
	cfg.BunnyPullZoneURL = "https://cdn.example.com"
	assert.True(t, cfg.CDNEnabled())
}
