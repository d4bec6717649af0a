package config

import (
	"time"
)

type DatabaseConfig struct {
	URI               string        `mapstructure:"uri"`
	Database          string        `mapstructure:"database"`
	DriversCollection string        `mapstructure:"drivers_collection"`
	MaxPoolSize       int           `mapstructure:"max_pool_size"`
	MinPoolSize       int           `mapstructure:"min_pool_size"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	SocketTimeout     time.Duration `mapstructure:"socket_timeout"`
	RunMigrations     bool          `mapstructure:"run_migrations"`
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:               getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:          getEnv("MONGODB_DATABASE", "gopet"),
		DriversCollection: getEnv("MONGODB_DRIVERS_COLLECTION", "drivers"),
		MaxPoolSize:       getEnvAsInt("MONGODB_MAX_POOL_SIZE", 50),
		MinPoolSize:       getEnvAsInt("MONGODB_MIN_POOL_SIZE", 2),
		ConnectTimeout:    getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SocketTimeout:     getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
		RunMigrations:     getEnvAsBool("MONGODB_RUN_MIGRATIONS", true),
	}
}
