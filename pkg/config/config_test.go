package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "atp-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Marketing.Enabled(), "sin URL no hay plataforma")
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "*/5 * * * *", cfg.Scheduler.StockRefreshSpec)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MARKETING_BASE_URL", "https://mail.example.com/api")
	t.Setenv("MARKETING_API_TOKEN", "tok")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("SCHEDULER_STOCK_REFRESH_SPEC", "0 * * * *")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Marketing.Enabled())
	assert.Equal(t, "tok", cfg.Marketing.APIToken)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "0 * * * *", cfg.Scheduler.StockRefreshSpec)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "atp", Password: "p@ss:word", DBName: "atp", SSLMode: "disable"}
	assert.Equal(t, "postgres://atp:p%40ss%3Aword@db:5432/atp?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_Pool(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_CONNECT_RETRIES", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int32(8), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.Zero(t, cfg.DB.ConnectRetries)
}
