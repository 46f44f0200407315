package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Clean up any existing env vars
	os.Unsetenv("QUOTELISTS_SERVER__ADDR")
	os.Unsetenv("QUOTELISTS_DATABASE__PORT")
	os.Unsetenv("QUOTELISTS_DATABASE__SSLMODE")
	os.Unsetenv("QUOTELISTS_INVITES__CLEAN_INTERVAL")
	os.Unsetenv("QUOTELISTS_INVITES__KEEP_DURATION")

	cfg, err := Load("test")
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "internal/storage/migrations", cfg.Database.Migrations)
	assert.NotZero(t, cfg.Invites.CleanInterval)
	assert.NotZero(t, cfg.Invites.KeepDuration)
	assert.True(t, cfg.Recency.Enabled)
	assert.Equal(t, "test", cfg.Environment)
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("QUOTELISTS_SERVER__ADDR", ":9999")
	os.Setenv("QUOTELISTS_INVITES__KEEP_DURATION", "12h")
	os.Setenv("QUOTELISTS_DATABASE__MIGRATIONS", "/opt/quotelists/migrations")
	defer func() {
		os.Unsetenv("QUOTELISTS_SERVER__ADDR")
		os.Unsetenv("QUOTELISTS_INVITES__KEEP_DURATION")
		os.Unsetenv("QUOTELISTS_DATABASE__MIGRATIONS")
	}()

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 12*time.Hour, cfg.Invites.KeepDuration)
	assert.Equal(t, "/opt/quotelists/migrations", cfg.Database.Migrations)
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			name: "all fields set",
			config: Config{
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     5432,
					User:     "testuser",
					Password: "testpass",
					Database: "testdb",
					SSLMode:  "disable",
				},
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable",
		},
		{
			name: "different port",
			config: Config{
				Database: DatabaseConfig{
					Host:     "db.example.com",
					Port:     5433,
					User:     "admin",
					Password: "secret",
					Database: "production",
					SSLMode:  "require",
				},
			},
			expected: "host=db.example.com port=5433 user=admin password=secret dbname=production sslmode=require",
		},
		{
			name: "empty password",
			config: Config{
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     5432,
					User:     "postgres",
					Password: "",
					Database: "mydb",
					SSLMode:  "disable",
				},
			},
			expected: "host=localhost port=5432 user=postgres password= dbname=mydb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.config.Database.DSN()
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestDSN_WithLoadedConfig(t *testing.T) {
	// Set up environment variables for database config
	os.Setenv("QUOTELISTS_DATABASE__HOST", "testhost")
	os.Setenv("QUOTELISTS_DATABASE__PORT", "5433")
	os.Setenv("QUOTELISTS_DATABASE__USER", "testuser")
	os.Setenv("QUOTELISTS_DATABASE__PASSWORD", "testpassword")
	os.Setenv("QUOTELISTS_DATABASE__DATABASE", "testdatabase")
	os.Setenv("QUOTELISTS_DATABASE__SSLMODE", "require")
	defer func() {
		os.Unsetenv("QUOTELISTS_DATABASE__HOST")
		os.Unsetenv("QUOTELISTS_DATABASE__PORT")
		os.Unsetenv("QUOTELISTS_DATABASE__USER")
		os.Unsetenv("QUOTELISTS_DATABASE__PASSWORD")
		os.Unsetenv("QUOTELISTS_DATABASE__DATABASE")
		os.Unsetenv("QUOTELISTS_DATABASE__SSLMODE")
	}()

	cfg, err := Load("test")
	require.NoError(t, err)

	dsn := cfg.Database.DSN()
	assert.Equal(t, "host=testhost port=5433 user=testuser password=testpassword dbname=testdatabase sslmode=require", dsn)
}
