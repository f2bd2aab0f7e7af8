package repository

import (
	"context"
	"fmt"
	"time"

	"octofit-tracker/internal/config"
	apperrors "octofit-tracker/internal/errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open builds the Store selected by STORE_DRIVER. The postgres store is
// migrated before it is returned.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		db, err := OpenPostgres(ctx, cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownStoreDriver, cfg.Store.Driver)
	}
}

// OpenPostgres opens a pooled gorm connection and pings it
func OpenPostgres(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// recompute workers and API handlers share the pool
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, err
	}

	return db, nil
}
