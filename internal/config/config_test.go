package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRIVER_STORAGE", "")
	t.Setenv("STORAGE_PROVIDER", "")
	t.Setenv("LIFECYCLE_STEP_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverStorageMemory, cfg.App.DriverStorage)
	assert.Equal(t, StorageProviderLocal, cfg.Storage.Provider)
	assert.Equal(t, 2500*time.Millisecond, cfg.Lifecycle.StepInterval)
	assert.Equal(t, "gopet", cfg.Database.Database)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DRIVER_STORAGE", "MONGO")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("LIFECYCLE_STEP_INTERVAL", "150ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverStorageMongo, cfg.App.DriverStorage)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 150*time.Millisecond, cfg.Lifecycle.StepInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.CORSAllowedOrigins)
}

func TestLoadRejectsUnknownDriverStorage(t *testing.T) {
	t.Setenv("DRIVER_STORAGE", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DRIVER_STORAGE")
}

func TestLoadRejectsUnknownStorageProvider(t *testing.T) {
	t.Setenv("DRIVER_STORAGE", "")
	t.Setenv("STORAGE_PROVIDER", "ftp")

	_, err := Load()
	require.Error(t, err)
}

func TestMalformedNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("DRIVER_STORAGE", "")
	t.Setenv("STORAGE_PROVIDER", "")
	t.Setenv("APP_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}

func TestDebugIsOffUnlessRequested(t *testing.T) {
	t.Setenv("DRIVER_STORAGE", "")
	t.Setenv("STORAGE_PROVIDER", "")
	t.Setenv("APP_DEBUG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.App.Debug)

	t.Setenv("APP_DEBUG", "true")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.Debug)
}

func TestIsProductionFollowsAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("APP_ENV", "development")
	assert.False(t, IsProduction())
}
