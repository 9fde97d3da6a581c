package db

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spotcontest/api/internal/config"
)

// Open picks the database from conf. DATABASE_URL wins over the postgres
// block when the driver is postgres.
func Open(conf *config.AppConfig) (*gorm.DB, error) {
	switch conf.DB.Driver {
	case config.DriverSQLite:
		return OpenSQLite(conf.SQLite.Path)
	default:
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return OpenPostgresWithURL(url)
		}

		return OpenPostgres(conf.Postgres)
	}
}

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

func OpenPostgresWithURL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open postgres -> %w", err)
	}

	zap.L().Info("connected to postgres")

	return db, nil
}

func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open sqlite -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)

	zap.L().Info("opened sqlite database", zap.String("path", path))

	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}
