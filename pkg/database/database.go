package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"owqueue/pkg/config"
	"owqueue/pkg/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database for the configured driver.
// Return the connection pool.
func NewConnection(cfg config.DatabaseConfiguration) (*gorm.DB, error) {
	dialector, err := getDialector(cfg)
	if err != nil {
		return nil, err
	}

	// Create the database instance.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Get the SQL database itself.
	sqlDb, sqlErr := db.DB()
	if sqlErr != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %v", sqlErr)
	}

	// Set the pool values. SQLite is a single writer, so keep one connection.
	if cfg.Driver == "sqlite" {
		sqlDb.SetMaxOpenConns(1)
	} else {
		sqlDb.SetMaxOpenConns(400)
		sqlDb.SetMaxIdleConns(10)
		sqlDb.SetConnMaxLifetime(time.Hour)
		sqlDb.SetConnMaxIdleTime(time.Hour)
	}

	// Test the connection.
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the tables for all the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Player{},
		&models.QueueEntry{},
	)
}

// getDialector builds the gorm dialector for the configured driver.
func getDialector(cfg config.DatabaseConfiguration) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		// Ensure the data directory exists before opening the file.
		if dir := filepath.Dir(cfg.DSN); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("couldn't create the database directory: %w", err)
			}
		}
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
