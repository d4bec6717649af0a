package main

import (
	"context"
	"fmt"
	"time"

	"gopet/internal/config"
	"gopet/internal/handlers"
	"gopet/internal/repositories/interfaces"
	"gopet/internal/repositories/memory"
	"gopet/internal/repositories/mongodb"
	"gopet/internal/seed"
	"gopet/pkg/cache"
	"gopet/pkg/database"
	"gopet/pkg/logger"
	"gopet/pkg/storage"
)

// backends holds the external resources the server owns for its lifetime.
type backends struct {
	drivers interfaces.DriverRepository
	mongo   *database.MongoDB
	cache   *cache.RedisCache
	storage storage.StorageProvider
}

func openBackends(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backends, error) {
	b := &backends{}

	if err := b.openDriverStore(ctx, cfg, log); err != nil {
		b.close(log)
		return nil, err
	}

	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(ctx, &cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			KeyPrefix:    cfg.Redis.KeyPrefix,
		})
		if err != nil {
			b.close(log)
			return nil, err
		}
		b.cache = redisCache
		log.WithField("address", cfg.Redis.Address()).Info("Snapshot cache enabled")
	}

	provider, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		b.close(log)
		return nil, err
	}
	b.storage = provider

	return b, nil
}

func (b *backends) openDriverStore(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.App.DriverStorage != config.DriverStorageMongo {
		b.drivers = memory.NewDriverRepository(seed.Drivers(time.Now()))
		log.Info("Using in-memory driver store")
		return nil
	}

	db, err := database.NewMongoDB(ctx, &database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		return err
	}
	b.mongo = db

	if cfg.Database.RunMigrations {
		migrator := database.NewMigrator(db.Database, mongodb.DriverMigrations(cfg.Database.DriversCollection), log)
		if err := migrator.Up(ctx); err != nil {
			return fmt.Errorf("run driver migrations: %w", err)
		}
	}

	b.drivers = mongodb.NewDriverRepository(db.Database, cfg.Database.DriversCollection)
	log.WithField("database", cfg.Database.Database).Info("Using MongoDB driver store")
	return nil
}

func openStorage(ctx context.Context, cfg *config.StorageConfig) (storage.StorageProvider, error) {
	switch cfg.Provider {
	case config.StorageProviderS3:
		return storage.NewAWSS3Storage(ctx, storage.AWSS3Options{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.Endpoint,
			CDNDomain:       cfg.AWS.CDNDomain,
		})
	case config.StorageProviderGCS:
		return storage.NewGCPStorage(ctx, cfg.GCP.Bucket, cfg.GCP.CredentialsFile, cfg.GCP.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
	}
}

func (b *backends) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{}
	if b.mongo != nil {
		checks["mongodb"] = b.mongo.Ping
	}
	if b.cache != nil {
		checks["redis"] = b.cache.Ping
	}
	return checks
}

func (b *backends) close(log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if b.storage != nil {
		if err := b.storage.Close(); err != nil {
			log.WithError(err).Warn("Failed to close upload storage")
		}
	}
	if b.cache != nil {
		if err := b.cache.Close(); err != nil {
			log.WithError(err).Warn("Failed to close redis")
		}
	}
	if b.mongo != nil {
		if err := b.mongo.Close(ctx); err != nil {
			log.WithError(err).Warn("Failed to close mongodb")
		}
	}
}
