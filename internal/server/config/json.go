package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nutricare/internal/flagx"
	"github.com/dmitrijs2005/nutricare/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// both "10s" strings and integer nanoseconds. Fields left out of the file
// keep their previous value.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	StorageBackend               *string         `json:"storage_backend"`
	UploadDir                    *string         `json:"upload_dir"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	DataDir                      *string         `json:"data_dir"`
	NutritionAPIURL              *string         `json:"nutrition_api_url"`
	NutritionAPIKey              *string         `json:"nutrition_api_key"`
	NutritionAPITimeout          *timex.Duration `json:"nutrition_api_timeout"`
}

// parseJson loads the file named by -c/-config into config. Nothing happens
// when the flag is absent; an unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.UploadDir, c.UploadDir)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.DataDir, c.DataDir)
	setString(&config.NutritionAPIURL, c.NutritionAPIURL)
	setString(&config.NutritionAPIKey, c.NutritionAPIKey)
	if c.NutritionAPITimeout != nil {
		config.NutritionAPITimeout = c.NutritionAPITimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
