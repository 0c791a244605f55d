package persistence

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skyscraper/internal/config"
	"skyscraper/internal/core"
)

// DefaultDatabase is the sqlite file used when nothing else is configured.
const DefaultDatabase = "skyscraper.sqlite"

// DB owns the gorm handle. A postgres:// DSN selects the postgres driver;
// anything else is treated as a sqlite file path.
type DB struct {
	db     *gorm.DB
	Config *config.Config
}

func (db *DB) Init(_ context.Context) error {
	dsn := db.Config.DatabaseURL
	if dsn == "" {
		dsn = DefaultDatabase
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	db.db = gormDB

	return db.db.AutoMigrate(
		&core.ProfileModel{},
		&core.PostModel{},
		&core.CursorModel{},
	)
}

func (db *DB) Model(a any) *gorm.DB {
	return db.db.Model(a)
}

func (db *DB) Count(a any) (int64, error) {
	var count int64
	return count, db.db.Model(a).Count(&count).Error
}

func (db *DB) DB() (*sql.DB, error) {
	return db.db.DB()
}

func (db *DB) Shutdown(_ context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}
