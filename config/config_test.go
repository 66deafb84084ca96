package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("test", nil, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.MaxBatchRows)
	assert.Equal(t, 10, cfg.MaxGenerateAttempts)
	assert.Empty(t, cfg.DSN)
	assert.Empty(t, cfg.FileStoragePath)
}

func TestParse_Flags(t *testing.T) {
	cfg, err := Parse("test", []string{"-a", "testaddress", "-b", "testurl", "-f", "/tmp/db.json", "-n", "3"}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "testaddress", cfg.ServerAddress)
	assert.Equal(t, "testurl", cfg.BaseURL)
	assert.Equal(t, "/tmp/db.json", cfg.FileStoragePath)
	assert.Equal(t, 3, cfg.MaxBatchRows)
}

func TestParse_EnvOverridesFlags(t *testing.T) {
	env := map[string]string{
		"SERVER_ADDRESS": ":9090",
		"DATABASE_DSN":   "postgres://localhost/db",
		"MAX_BATCH_ROWS": "not-a-number",
		"REDIS_ADDRESS":  "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg, err := Parse("test", []string{"-a", "flagaddress", "-r", "localhost:6379"}, lookup)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "postgres://localhost/db", cfg.DSN)
	assert.Equal(t, 5, cfg.MaxBatchRows)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
}

func TestParse_UnknownFlag(t *testing.T) {
	_, err := Parse("test", []string{"-unknown"}, noEnv)
	assert.Error(t, err)
}

func TestParse_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BASE_URL=https://sho.rt\nLOG_LEVEL=debug\n"), 0644))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg, err := Parse("test", nil, lookup)
	require.NoError(t, err)
	assert.Equal(t, "https://sho.rt", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}
