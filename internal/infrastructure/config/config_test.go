package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FRAMESHOP_APP_NAME":                      os.Getenv("FRAMESHOP_APP_NAME"),
		"FRAMESHOP_APP_ENV":                       os.Getenv("FRAMESHOP_APP_ENV"),
		"FRAMESHOP_APP_PORT":                      os.Getenv("FRAMESHOP_APP_PORT"),
		"FRAMESHOP_DATABASE_HOST":                 os.Getenv("FRAMESHOP_DATABASE_HOST"),
		"FRAMESHOP_DATABASE_PORT":                 os.Getenv("FRAMESHOP_DATABASE_PORT"),
		"FRAMESHOP_DATABASE_USER":                 os.Getenv("FRAMESHOP_DATABASE_USER"),
		"FRAMESHOP_DATABASE_PASSWORD":             os.Getenv("FRAMESHOP_DATABASE_PASSWORD"),
		"FRAMESHOP_DATABASE_DBNAME":               os.Getenv("FRAMESHOP_DATABASE_DBNAME"),
		"FRAMESHOP_DATABASE_SSLMODE":              os.Getenv("FRAMESHOP_DATABASE_SSLMODE"),
		"FRAMESHOP_CACHE_BACKEND":                 os.Getenv("FRAMESHOP_CACHE_BACKEND"),
		"FRAMESHOP_QUOTING_DEFAULT_MARKUP":        os.Getenv("FRAMESHOP_QUOTING_DEFAULT_MARKUP"),
		"FRAMESHOP_QUOTING_DEFAULT_PAYMENT_TERM":  os.Getenv("FRAMESHOP_QUOTING_DEFAULT_PAYMENT_TERM"),
		"FRAMESHOP_QUOTING_RETAIL_PRICE_FALLBACK": os.Getenv("FRAMESHOP_QUOTING_RETAIL_PRICE_FALLBACK"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "frameshop-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "frameshop", cfg.Database.DBName)
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 3.0, cfg.Quoting.DefaultMarkup)
		assert.Equal(t, "net120", cfg.Quoting.DefaultPaymentTerm)
		assert.True(t, cfg.Quoting.RetailPriceFallback)
	})

	t.Run("loads values from environment variables with FRAMESHOP prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRAMESHOP_APP_NAME", "test-app")
		os.Setenv("FRAMESHOP_APP_PORT", "9000")
		os.Setenv("FRAMESHOP_DATABASE_HOST", "testdb.local")
		os.Setenv("FRAMESHOP_DATABASE_PORT", "5433")
		os.Setenv("FRAMESHOP_QUOTING_DEFAULT_MARKUP", "2.5")
		os.Setenv("FRAMESHOP_QUOTING_DEFAULT_PAYMENT_TERM", "cash")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 2.5, cfg.Quoting.DefaultMarkup)
		assert.Equal(t, "cash", cfg.Quoting.DefaultPaymentTerm)
	})

	t.Run("retail fallback can be disabled explicitly", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRAMESHOP_QUOTING_RETAIL_PRICE_FALLBACK", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.False(t, cfg.Quoting.RetailPriceFallback)
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRAMESHOP_CACHE_BACKEND", "memcached")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRAMESHOP_APP_ENV", "production")
		os.Setenv("FRAMESHOP_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "frameshop",
		Password: "p@ss/word",
		DBName:   "frameshop",
		SSLMode:  "require",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
