package testutil

import (
	"testing"

	"owqueue/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestConnection opens an in-memory sqlite database with the full schema.
// Return the connection pool and its cleanup function.
func NewTestConnection(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm connection: %v", err)
	}

	sqlDB, sqlErr := db.DB()
	if sqlErr != nil {
		t.Fatalf("Failed to get SQL DB: %v", sqlErr)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	// Run the migrations to replicate the full schema.
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate the schema: %v", err)
	}

	cleanup := func() {
		sqlDB.Close()
	}

	return db, cleanup
}
