package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv("GEOCODER_API_KEY", "test-key")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Geocoder.APIKey)
	assert.Equal(t, "https://api.opencagedata.com/geocode/v1", cfg.Geocoder.BaseURL)
	assert.Equal(t, 1200*time.Millisecond, cfg.Seed.Delay)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "listing-geocode-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 500*time.Millisecond, cfg.Worker.PollInterval)
	assert.Equal(t, time.Minute, cfg.Worker.ClaimMinIdle)
	assert.Equal(t, ":8080", cfg.GetServerAddr())
}

func TestLoadFile_MissingGeocoderKey(t *testing.T) {
	t.Setenv("GEOCODER_API_KEY", "")
	t.Setenv("MAP_TOKEN", "")

	cfg, err := LoadFile("")
	assert.ErrorIs(t, err, ErrMissingGeocoderKey)
	assert.Nil(t, cfg)
}

func TestLoadFile_MapTokenFallback(t *testing.T) {
	t.Setenv("GEOCODER_API_KEY", "")
	t.Setenv("MAP_TOKEN", "legacy-token")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", cfg.Geocoder.APIKey)
}

func TestLoadFile_FromEnvFile(t *testing.T) {
	t.Setenv("GEOCODER_API_KEY", "")
	t.Setenv("MAP_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "GEOCODER_API_KEY=file-key\nSEED_DELAY_MS=50\nDB_NAME=listings\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Geocoder.APIKey)
	assert.Equal(t, 50*time.Millisecond, cfg.Seed.Delay)
	assert.Contains(t, cfg.Database.DSN(), "dbname=listings")
}

func TestConfig_Addresses(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "listings", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=listings sslmode=disable", db.DSN())

	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
