// Package database provides the gorm connection and the database backed
// response cache
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// Supported gorm drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured database and migrates the cache table
func Open(cfg ports.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported database driver: %s", cfg.Driver), nil)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.NewDatabaseError("connect to database", err)
	}
	if cfg.Driver == DriverSQLite {
		// every sqlite connection to :memory: opens a separate database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.NewDatabaseError("connect to database", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		_ = Close(db)
		return nil, err
	}
	return db, nil
}

// Migrate executes the schema migrations
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&CacheEntryModel{}); err != nil {
		return errors.NewDatabaseError("migrate cache table", err)
	}
	return nil
}

// Close safely closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
