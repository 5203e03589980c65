package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSNOmitsEmptyPassword(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Database: "storefront",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres dbname=storefront sslmode=disable",
		d.DSN())

	d.Password = "hunter2"
	assert.Contains(t, d.DSN(), "password=hunter2")
}

func TestRedactedDSNMasksPassword(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "hunter2",
		Database: "storefront",
		SSLMode:  "require",
	}

	redacted := d.RedactedDSN()
	assert.NotContains(t, redacted, "hunter2")
	assert.Contains(t, redacted, "password=[redacted]")
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("FLAG_SET_FALSE", "false")
	t.Setenv("FLAG_SET_TRUE", "TRUE")
	t.Setenv("FLAG_GARBAGE", "maybe")

	assert.False(t, getEnvAsBool("FLAG_SET_FALSE", true))
	assert.True(t, getEnvAsBool("FLAG_SET_TRUE", false))
	assert.True(t, getEnvAsBool("FLAG_GARBAGE", true))
	assert.False(t, getEnvAsBool("FLAG_UNSET", false))
}

func TestRateLimitConfigFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_WRITES_PER_SECOND", "9")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 9, cfg.RateLimit.WritesPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
}
