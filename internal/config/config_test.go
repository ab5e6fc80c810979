package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.SeedEnabled)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Database.Reset)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "crm-api", cfg.JWT.Issuer)
	assert.Equal(t, "crm-client", cfg.JWT.Audience)
	assert.Equal(t, time.Hour, cfg.JWT.Duration())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SERVER_PORT":          "9090",
		"DB_DRIVER":            "MySQL",
		"DATABASE_DSN":         "crm:crm@tcp(localhost:3306)/crm?parseTime=true",
		"REDIS_ADDR":           "localhost:6379",
		"JWT_SECRET":           "s3cret",
		"JWT_DURATION_MINUTES": "15",
		"SEED_ENABLED":         "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Duration())
	assert.False(t, cfg.SeedEnabled)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		expectErr string
	}{
		{
			name:      "missing secret",
			env:       map[string]string{},
			expectErr: "JWT_SECRET is required",
		},
		{
			name:      "unknown driver",
			env:       map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "oracle"},
			expectErr: "DB_DRIVER must be",
		},
		{
			name:      "non-positive duration",
			env:       map[string]string{"JWT_SECRET": "x", "JWT_DURATION_MINUTES": "0"},
			expectErr: "JWT_DURATION_MINUTES must be positive",
		},
		{
			name:      "malformed number",
			env:       map[string]string{"JWT_SECRET": "x", "REDIS_DB": "one"},
			expectErr: "process env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}
