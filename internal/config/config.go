package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	StorageInline = "inline"
	StorageDisk   = "disk"
	StorageGCS    = "gcs"
)

// Config holds the application configuration, read from the environment
// (and an optional .env file).
type Config struct {
	AppName string
	Env     string
	Port    string

	DBDriver string
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	ImageStorage       string
	UploadDir          string
	PublicBaseURL      string
	GCSBucket          string
	GCSCredentialsFile string
	UploadMaxFiles     int
	UploadMaxFileSize  int64

	CORSOrigins string
}

// Load reads the configuration. Values already present in the environment
// win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper fills a Config from v after registering defaults and binding
// the environment.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_NAME", "tokoadmin")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "tokoadmin.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "4h")
	v.SetDefault("IMAGE_STORAGE", StorageInline)
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("GCS_BUCKET", "")
	v.SetDefault("GCS_CREDENTIALS_FILE", "")
	v.SetDefault("UPLOAD_MAX_FILES", 10)
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("CORS_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{
		AppName:            v.GetString("APP_NAME"),
		Env:                strings.ToLower(v.GetString("APP_ENV")),
		Port:               v.GetString("APP_PORT"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:              v.GetString("DATABASE_DSN"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             v.GetDuration("JWT_TTL"),
		ImageStorage:       strings.ToLower(v.GetString("IMAGE_STORAGE")),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		PublicBaseURL:      strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		GCSBucket:          v.GetString("GCS_BUCKET"),
		GCSCredentialsFile: v.GetString("GCS_CREDENTIALS_FILE"),
		UploadMaxFiles:     v.GetInt("UPLOAD_MAX_FILES"),
		UploadMaxFileSize:  v.GetInt64("UPLOAD_MAX_FILE_SIZE"),
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
	}
	if !strings.HasPrefix(cfg.Port, ":") && !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks option values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.ImageStorage {
	case StorageInline, StorageDisk:
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when IMAGE_STORAGE=gcs")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_STORAGE %q", c.ImageStorage)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.UploadMaxFiles <= 0 || c.UploadMaxFileSize <= 0 {
		return fmt.Errorf("upload limits must be positive")
	}
	return nil
}

// BodyLimit is the largest request body Fiber accepts: every file at its
// maximum size plus room for the form fields.
func (c *Config) BodyLimit() int {
	return int(int64(c.UploadMaxFiles)*c.UploadMaxFileSize) + 1024*1024
}
