package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv copies variables from path into the process environment when
// the file exists. Variables already set in the environment win.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays NUTRICARE_* environment variables. Unset variables leave
// the current value alone; token lifetimes are given in minutes, the API
// timeout as a Go duration string.
func parseEnv(config *Config) {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	minutes := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				panic(err)
			}
			*dst = time.Duration(n) * time.Minute
		}
	}

	str("NUTRICARE_ADDRESS", &config.EndpointAddrHTTP)
	str("NUTRICARE_DATABASE_DSN", &config.DatabaseDSN)
	str("NUTRICARE_SECRET_KEY", &config.SecretKey)
	minutes("NUTRICARE_ACCESS_TOKEN_MINUTES", &config.AccessTokenValidityDuration)
	minutes("NUTRICARE_REFRESH_TOKEN_MINUTES", &config.RefreshTokenValidityDuration)
	str("NUTRICARE_STORAGE_BACKEND", &config.StorageBackend)
	str("NUTRICARE_UPLOAD_DIR", &config.UploadDir)
	str("NUTRICARE_S3_ROOT_USER", &config.S3RootUser)
	str("NUTRICARE_S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("NUTRICARE_S3_BUCKET", &config.S3Bucket)
	str("NUTRICARE_S3_REGION", &config.S3Region)
	str("NUTRICARE_S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("NUTRICARE_DATA_DIR", &config.DataDir)
	str("NUTRICARE_NUTRITION_API_URL", &config.NutritionAPIURL)
	str("NUTRICARE_NUTRITION_API_KEY", &config.NutritionAPIKey)

	if v, ok := os.LookupEnv("NUTRICARE_NUTRITION_API_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.NutritionAPITimeout = d
	}
}
