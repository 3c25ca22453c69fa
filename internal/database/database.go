// Package database opens the key/value backend selected in the storage
// configuration.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"farm-advisory/internal/config"
	"farm-advisory/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Backend is an opened key/value repository and the connection behind it
type Backend struct {
	Repo  repository.KVRepository
	close func() error
}

// Close releases the underlying connection
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the backend named by cfg.Driver. SQL backends get their
// table migrated; redis is pinged before use.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (*Backend, error) {
	log = log.With("driver", cfg.Driver, "namespace", cfg.Namespace)

	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return &Backend{Repo: repository.NewMemoryKVRepository()}, nil

	case config.DriverSQLite:
		log.Info("opening sqlite storage", "path", cfg.Path)
		return openSQL(sqlite.Open(cfg.Path), cfg.Namespace)

	case config.DriverPostgres:
		log.Info("opening postgres storage")
		return openSQL(postgres.Open(cfg.DSN), cfg.Namespace)

	case config.DriverRedis:
		log.Info("opening redis storage", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("database: ping redis %s: %w", cfg.RedisAddr, err)
		}
		return &Backend{
			Repo:  repository.NewRedisKVRepository(client, cfg.Namespace, cfg.Timeout),
			close: client.Close,
		}, nil
	}

	return nil, fmt.Errorf("database: unknown driver %q", cfg.Driver)
}

func openSQL(dialector gorm.Dialector, namespace string) (*Backend, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: %s handle: %w", dialector.Name(), err)
	}

	if err := repository.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database: migrate %s: %w", dialector.Name(), err)
	}

	return &Backend{
		Repo:  repository.NewKVRepository(db, namespace),
		close: sqlDB.Close,
	}, nil
}
