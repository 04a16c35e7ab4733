package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int    `env:"TEST_SF_PORT" envDefault:"8080"`
	BaseURL  string `env:"TEST_SF_BASE_URL" envDefault:"https://dummyjson.com"`
	LogLevel string `env:"TEST_SF_LOG_LEVEL" envDefault:"info"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://dummyjson.com", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_SF_PORT", "9090")
	t.Setenv("TEST_SF_BASE_URL", "http://localhost:3000")

	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_SF_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
