package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "WEB_PORT", "API_SERVER", "CORS_ORIGINS", "STORE_DRIVER",
		"MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION", "DATABASE_URL",
		"STORE_TIMEOUT", "LEGACY_PLACEHOLDERS", "APP_ENV", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5050", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "Projects", cfg.Store.MongoCollection)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.False(t, cfg.Store.LegacyPlaceholders)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_URL", "postgres://localhost/lotbook")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("LEGACY_PLACEHOLDERS", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("APP_ENV", EnvProduction)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.True(t, cfg.Store.LegacyPlaceholders)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "5050"},
			Store:  StoreConfig{Driver: DriverMemory, Timeout: time.Second},
			App:    AppConfig{Environment: EnvDevelopment},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "PORT"},
		{name: "bad env", mutate: func(c *Config) { c.App.Environment = "staging" }, wantErr: "APP_ENV"},
		{name: "bad driver", mutate: func(c *Config) { c.Store.Driver = "redis" }, wantErr: "STORE_DRIVER"},
		{name: "postgres without url", mutate: func(c *Config) { c.Store.Driver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "mongo without uri", mutate: func(c *Config) { c.Store.Driver = DriverMongo }, wantErr: "MONGO_URI"},
		{name: "zero timeout", mutate: func(c *Config) { c.Store.Timeout = 0 }, wantErr: "STORE_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAPIBaseURL(t *testing.T) {
	url, err := APIBaseURL(EnvDevelopment, "https://api.example.com")
	require.NoError(t, err)
	assert.Equal(t, DevAPIBaseURL, url)

	url, err = APIBaseURL(EnvProduction, "https://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", url)

	_, err = APIBaseURL(EnvProduction, "")
	assert.Error(t, err)
}
