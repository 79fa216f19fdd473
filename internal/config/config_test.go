package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "24", cfg.Company.StateCode)
	assert.Equal(t, 20*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "einvoices", cfg.Export.KeyPrefix)
	assert.Equal(t, int64(900), cfg.S3.PresignExpiry)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRADEDESK_BACKEND_BASE_URL", "https://erp.example.com/api/")
	t.Setenv("TRADEDESK_COMPANY_STATE_CODE", "27")
	t.Setenv("TRADEDESK_COMPANY_GSTIN", "27AAACS1234A1Z5")
	t.Setenv("TRADEDESK_CORS_ALLOWED_ORIGINS", " https://app.example.com , ,https://admin.example.com")
	t.Setenv("TRADEDESK_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("TRADEDESK_DB_PORT", "6543")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, "27", cfg.Company.StateCode)
	assert.Equal(t, "27AAACS1234A1Z5", cfg.Company.GSTIN)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TRADEDESK_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", db.DSN())
}
