package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	DriverStorageMemory = "memory"
	DriverStorageMongo  = "mongo"
)

type Config struct {
	App       *AppConfig       `mapstructure:"app"`
	Database  *DatabaseConfig  `mapstructure:"database"`
	Redis     *RedisConfig     `mapstructure:"redis"`
	Storage   *StorageConfig   `mapstructure:"storage"`
	WebSocket *WebSocketConfig `mapstructure:"websocket"`
	Lifecycle *LifecycleConfig `mapstructure:"lifecycle"`
	Security  *SecurityConfig  `mapstructure:"security"`
}

type AppConfig struct {
	Name          string        `mapstructure:"name"`
	Version       string        `mapstructure:"version"`
	Environment   string        `mapstructure:"environment"`
	Port          int           `mapstructure:"port"`
	Host          string        `mapstructure:"host"`
	Debug         bool          `mapstructure:"debug"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
	DriverStorage string        `mapstructure:"driver_storage"`
	SnapshotTTL   time.Duration `mapstructure:"snapshot_ttl"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
}

// LifecycleConfig drives the server-side ride lifecycle simulator.
type LifecycleConfig struct {
	StepInterval time.Duration `mapstructure:"step_interval"`
}

type SecurityConfig struct {
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	TrustedProxies     []string `mapstructure:"trusted_proxies"`
	MaxUploadBytes     int64    `mapstructure:"max_upload_bytes"`
}

// settings resolves every key. Environment variables always win over the
// optional config file.
var settings = newSettings()

func newSettings() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present), the optional CONFIG_FILE and the process
// environment, then validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	settings = newSettings()
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		settings.SetConfigFile(file)
		if err := settings.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	config := &Config{
		App:       loadAppConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Storage:   loadStorageConfig(),
		WebSocket: loadWebSocketConfig(),
		Lifecycle: loadLifecycleConfig(),
		Security:  loadSecurityConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.App.DriverStorage {
	case DriverStorageMemory, DriverStorageMongo:
	default:
		return fmt.Errorf("invalid DRIVER_STORAGE %q: expected %q or %q",
			c.App.DriverStorage, DriverStorageMemory, DriverStorageMongo)
	}

	switch c.Storage.Provider {
	case StorageProviderLocal, StorageProviderS3, StorageProviderGCS:
	default:
		return fmt.Errorf("invalid STORAGE_PROVIDER %q", c.Storage.Provider)
	}

	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT %d", c.App.Port)
	}

	if c.Lifecycle.StepInterval <= 0 {
		return fmt.Errorf("LIFECYCLE_STEP_INTERVAL must be positive")
	}

	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:          getEnv("APP_NAME", "GoPet"),
		Version:       getEnv("APP_VERSION", "1.0.0"),
		Environment:   getEnv("APP_ENV", "development"),
		Port:          getEnvAsInt("APP_PORT", 8080),
		Host:          getEnv("APP_HOST", "0.0.0.0"),
		Debug:         getEnvAsBool("APP_DEBUG", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		DriverStorage: strings.ToLower(getEnv("DRIVER_STORAGE", DriverStorageMemory)),
		SnapshotTTL:   getEnvAsDuration("SNAPSHOT_CACHE_TTL", 5*time.Second),
		ShutdownGrace: getEnvAsDuration("SHUTDOWN_GRACE", 10*time.Second),
	}
}

func loadLifecycleConfig() *LifecycleConfig {
	return &LifecycleConfig{
		StepInterval: getEnvAsDuration("LIFECYCLE_STEP_INTERVAL", 2500*time.Millisecond),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		MaxUploadBytes:     getEnvAsInt64("UPLOAD_MAX_BYTES", 10<<20),
	}
}

func getEnv(key, defaultValue string) string {
	if value := settings.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := settings.Get(key); value != nil && value != "" {
		if intValue, err := cast.ToIntE(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := settings.Get(key); value != nil && value != "" {
		if intValue, err := cast.ToInt64E(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := settings.Get(key); value != nil && value != "" {
		if boolValue, err := cast.ToBoolE(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := settings.Get(key); value != nil && value != "" {
		if duration, err := cast.ToDurationE(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := settings.Get(key)
	switch v := value.(type) {
	case nil:
		return defaultValue
	case string:
		if v == "" {
			return defaultValue
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		if slice, err := cast.ToStringSliceE(v); err == nil {
			return slice
		}
	}
	return defaultValue
}

func IsProduction() bool {
	return getEnv("APP_ENV", "development") == "production"
}
