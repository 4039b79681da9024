package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("NUTRICARE_DATABASE_DSN", "postgres://env")
	t.Setenv("NUTRICARE_ACCESS_TOKEN_MINUTES", "5")
	t.Setenv("NUTRICARE_STORAGE_BACKEND", "s3")
	t.Setenv("NUTRICARE_NUTRITION_API_KEY", "from-env")
	t.Setenv("NUTRICARE_NUTRITION_API_TIMEOUT", "3s")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "s3", c.StorageBackend)
	assert.Equal(t, "from-env", c.NutritionAPIKey)
	assert.Equal(t, 3*time.Second, c.NutritionAPITimeout)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP, "unset variables keep defaults")
}

func TestParseEnv_BadNumberPanics(t *testing.T) {
	t.Setenv("NUTRICARE_REFRESH_TOKEN_MINUTES", "many")
	require.Panics(t, func() { parseEnv(&Config{}) })
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NUTRICARE_TEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("NUTRICARE_TEST_DOTENV") })

	loadDotEnv(path)
	assert.Equal(t, "loaded", os.Getenv("NUTRICARE_TEST_DOTENV"))

	// a missing file is not an error
	require.NotPanics(t, func() { loadDotEnv(filepath.Join(t.TempDir(), "absent.env")) })
}
