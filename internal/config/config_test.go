package config_test

import (
	"testing"
	"time"

	"tokoadmin/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Port)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, config.StorageInline, cfg.ImageStorage)
	assert.Equal(t, 4*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.UploadMaxFiles)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxFileSize)
	assert.NotEmpty(t, cfg.JWTSecret, "development gets a fallback secret")
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("PUBLIC_BASE_URL", "https://shop.example.com/")
	t.Setenv("IMAGE_STORAGE", "disk")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "https://shop.example.com", cfg.PublicBaseURL)
	assert.Equal(t, config.StorageDisk, cfg.ImageStorage)
}

func TestFromViperRejectsBadValues(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mongodb")
		_, err := config.FromViper(viper.New())
		assert.ErrorContains(t, err, "DB_DRIVER")
	})
	t.Run("gcs without bucket", func(t *testing.T) {
		t.Setenv("IMAGE_STORAGE", "gcs")
		_, err := config.FromViper(viper.New())
		assert.ErrorContains(t, err, "GCS_BUCKET")
	})
	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, err := config.FromViper(viper.New())
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
