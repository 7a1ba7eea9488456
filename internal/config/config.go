package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/alexdoe/folio/internal/util"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Redis     RedisConfig
	BlobStore BlobStoreConfig
	ImageHost ImageHostConfig
	Archive   ArchiveConfig
	Postgres  PostgresConfig
	Auth      AuthConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Addr      string
	PublicURL string
}

type StorageConfig struct {
	Backend string // "file" or "redis"
	DataDir string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type BlobStoreConfig struct {
	BaseURL string
}

type ImageHostConfig struct {
	UploadURL string
	APIKey    string
}

type ArchiveConfig struct {
	Enabled bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type AuthConfig struct {
	EditPassword string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:      getEnv("SERVER_ADDR", ":8080"),
			PublicURL: getEnv("PUBLIC_URL", "http://localhost:8080"),
		},
		Storage: StorageConfig{
			Backend: util.Normalize(getEnv("STORAGE_BACKEND", "file")),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		BlobStore: BlobStoreConfig{
			BaseURL: getEnv("BLOBSTORE_BASE_URL", "https://jsonblob.com/api/jsonBlob"),
		},
		ImageHost: ImageHostConfig{
			UploadURL: getEnv("IMGBB_UPLOAD_URL", "https://api.imgbb.com/1/upload"),
			APIKey:    getEnv("IMGBB_API_KEY", ""),
		},
		Archive: ArchiveConfig{
			Enabled: getEnvBool("ARCHIVE_ENABLED", false),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "folio"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "folio"),
		},
		Auth: AuthConfig{
			EditPassword: getEnv("EDIT_PASSWORD", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.EditPassword == "" {
		return fmt.Errorf("EDIT_PASSWORD is required")
	}
	switch c.Storage.Backend {
	case "file":
		if c.Storage.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file backend")
		}
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (expected file or redis)", c.Storage.Backend)
	}
	if c.BlobStore.BaseURL == "" {
		return fmt.Errorf("BLOBSTORE_BASE_URL is required")
	}
	if c.Archive.Enabled && c.Postgres.Password == "" {
		return fmt.Errorf("POSTGRES_PASSWORD is required when ARCHIVE_ENABLED is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
