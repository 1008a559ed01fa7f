package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "DATABASE_URL", "JWKS_URL", "CORS_ORIGINS", "AUTO_MIGRATE", "LOG_DIR", "LOG_MAX_FILES", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 10, cfg.LogMaxFiles)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DEBUG", "")
	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Environment: "prod", Port: "8080", DatabaseURL: "postgres://localhost/memoria", JWKSURL: "https://id.example/jwks.json", LogMaxFiles: 5}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: "DATABASE_URL"},
		{name: "missing jwks url", mutate: func(c *Config) { c.JWKSURL = "" }, wantErr: "JWKS_URL"},
		{name: "missing jwks url in dev", mutate: func(c *Config) { c.JWKSURL = ""; c.Environment = "dev" }},
		{name: "non numeric port", mutate: func(c *Config) { c.Port = "http" }, wantErr: "PORT"},
		{name: "bad log max files", mutate: func(c *Config) { c.LogMaxFiles = -1 }, wantErr: "LOG_MAX_FILES"},
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

func TestLoad_MalformedLogMaxFilesFailsValidation(t *testing.T) {
	t.Setenv("LOG_MAX_FILES", "many")
	t.Setenv("DATABASE_URL", "postgres://localhost/memoria")
	t.Setenv("JWKS_URL", "https://id.example/jwks.json")
	t.Setenv("PORT", "")

	assert.Error(t, Load().Validate())
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"server-2024-01-01T00-00-00.log",
		"server-2024-01-02T00-00-00.log",
		"server-2024-01-03T00-00-00.log",
		"admin-2024-01-01T00-00-00.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	require.NoError(t, cleanupOldLogs(dir, "server", 2))

	left, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "server-2024-01-02T00-00-00.log"),
		filepath.Join(dir, "server-2024-01-03T00-00-00.log"),
		filepath.Join(dir, "admin-2024-01-01T00-00-00.log"),
	}, left)
}
