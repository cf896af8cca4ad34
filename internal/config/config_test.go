package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COURIER_SERVER_ADDR", ":8080")
	t.Setenv("COURIER_DATABASE_PATH", "courier.db")
	t.Setenv("COURIER_AUTH_TOKENSECRET", "super-secret")
	t.Setenv("COURIER_AUTH_TOKENEXPIRATIONSECONDS", "86400")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "courier.db", cfg.Database.Path)
	assert.Equal(t, "super-secret", cfg.Auth.TokenSecret)
	assert.Equal(t, 86400, cfg.Auth.TokenExpirationSeconds)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())

	// storage is optional and defaulted
	assert.Empty(t, cfg.Storage.Bucket)
	assert.Equal(t, "avatars", cfg.Storage.KeyPrefix)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
}

func TestLoadStorageOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COURIER_STORAGE_BUCKET", "courier-avatars")
	t.Setenv("COURIER_STORAGE_REGION", "eu-west-1")
	t.Setenv("COURIER_STORAGE_ENDPOINT", "http://localhost:9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "courier-avatars", cfg.Storage.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Storage.Region)
	assert.Equal(t, "http://localhost:9000", cfg.Storage.Endpoint)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.Server.Addr = ":8080"
		cfg.Database.Path = "courier.db"
		cfg.Auth.TokenSecret = "super-secret"
		cfg.Auth.TokenExpirationSeconds = 3600
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = " " },
			wantErr: "database path is required",
		},
		{
			name:    "missing listen address",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "server listen address is required",
		},
		{
			name:    "missing token secret",
			mutate:  func(c *Config) { c.Auth.TokenSecret = "" },
			wantErr: "auth token secret is required",
		},
		{
			name:    "zero token expiration",
			mutate:  func(c *Config) { c.Auth.TokenExpirationSeconds = 0 },
			wantErr: "auth token expiration seconds must be positive",
		},
		{
			name:    "negative token expiration",
			mutate:  func(c *Config) { c.Auth.TokenExpirationSeconds = -1 },
			wantErr: "auth token expiration seconds must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.EqualError(t, cfg.Validate(), tt.wantErr)
		})
	}
}
