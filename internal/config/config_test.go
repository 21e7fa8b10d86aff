package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:        "development",
		Port:       "8460",
		DBDriver:   "postgres",
		DBPassword: "password",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		RedisURL:   "localhost:6379",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		c := validConfig()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := validConfig()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("unknown db driver", func(t *testing.T) {
		c := validConfig()
		c.DBDriver = "mysql"
		assert.Error(t, c.Validate())
	})

	t.Run("sqlite allowed in development", func(t *testing.T) {
		c := validConfig()
		c.DBDriver = "sqlite"
		assert.NoError(t, c.Validate())
	})
}

func TestConfig_ValidateProduction(t *testing.T) {
	production := func() *Config {
		c := validConfig()
		c.Env = "production"
		c.DBPassword = "a-strong-production-password"
		return c
	}

	t.Run("valid production config", func(t *testing.T) {
		assert.NoError(t, production().Validate())
	})

	t.Run("default jwt secret rejected", func(t *testing.T) {
		c := production()
		c.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, c.Validate())
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		c := production()
		c.JWTSecret = "too-short"
		assert.Error(t, c.Validate())
	})

	t.Run("sqlite rejected", func(t *testing.T) {
		c := production()
		c.DBDriver = "sqlite"
		assert.Error(t, c.Validate())
	})

	t.Run("default db password rejected", func(t *testing.T) {
		c := production()
		c.DBPassword = "password"
		assert.Error(t, c.Validate())
	})
}

func TestConfig_IsProduction(t *testing.T) {
	for env, want := range map[string]bool{
		"production":  true,
		"prod":        true,
		"development": false,
		"test":        false,
		"":            false,
	} {
		c := &Config{Env: env}
		assert.Equal(t, want, c.IsProduction(), "env=%q", env)
	}
}
