package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "syncdesk-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxBytes)
	assert.Equal(t, 5, cfg.Import.PreviewRows)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.False(t, cfg.DB.ForceIPv4)
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("DB_MAX_CONNS", "10")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, int64(2048), cfg.Storage.MaxBytes)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, 10, cfg.DB.MaxConns)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "syncdesk", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/syncdesk?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
