// Package testutil opens throwaway databases for repository and service tests.
package testutil

import (
	"testing"

	"docgentor-be/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB returns a migrated in-memory database private to t. A single
// connection keeps every query on the same memory database.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.AppSettings{},
		&model.Entitlement{},
		&model.PaymentRedemption{},
		&model.EntitlementAuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
