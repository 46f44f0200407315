// Package testutils provides helpers for database-backed tests. Tests that
// need PostgreSQL use an env-configured instance and are skipped when none
// is reachable.
package testutils

import (
	"fmt"
	"os"
	"testing"

	"github.com/mgalvez/quotelists-go/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDBConfig holds configuration for test database
type TestDBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DefaultTestDBConfig returns default test database configuration
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "quotelists_test"),
		Password: getEnv("TEST_DB_PASSWORD", "quotelists_test"),
		Database: getEnv("TEST_DB_NAME", "quotelists_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string
func (c *TestDBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// TestDB wraps a GORM database connection for testing
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB connects to the test database, migrates the schema, and
// registers a truncate cleanup. Skips the test when no database is
// reachable.
func NewTestDB(t *testing.T) *TestDB {
	cfg := DefaultTestDBConfig()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("test database not reachable: %v", err)
	}

	testDB := &TestDB{DB: db}

	if err := db.AutoMigrate(
		&store.QuoteList{},
		&store.Quote{},
		&store.ListAlias{},
		&store.Invite{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup truncates all tables
func (tdb *TestDB) Cleanup() {
	tables := []string{"quotes", "list_aliases", "invites", "quote_lists"}
	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
	}
}

// getEnv gets environment variable or returns default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int or returns default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		fmt.Sscanf(value, "%d", &result)
		return result
	}
	return defaultValue
}
