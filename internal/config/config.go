// Package config loads server and worker settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings shared by the API server and the worker.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBDatabase string

	RedisHost string
	RedisPort string

	FolderPath     string
	StorageBackend string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SessionTTL        time.Duration
	WorkerConcurrency int
	LogLevel          string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = "5000"
	c.DBHost = "localhost"
	c.DBPort = "27017"
	c.DBDatabase = "files_manager"
	c.RedisHost = "localhost"
	c.RedisPort = "6379"
	c.FolderPath = "/tmp/files_manager"
	c.StorageBackend = "local"
	c.MinioEndpoint = "localhost:9000"
	c.MinioAccessKey = "minioadmin"
	c.MinioSecretKey = "minioadmin"
	c.MinioBucket = "files-manager"
	c.SessionTTL = 24 * time.Hour
	c.WorkerConcurrency = 4
	c.LogLevel = "info"
}

// Load reads an optional .env file and overlays environment variables on
// top of the defaults. A missing .env is not an error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	str(&c.Port, "PORT")
	str(&c.DBHost, "DB_HOST")
	str(&c.DBPort, "DB_PORT")
	str(&c.DBDatabase, "DB_DATABASE")
	str(&c.RedisHost, "REDIS_HOST")
	str(&c.RedisPort, "REDIS_PORT")
	str(&c.FolderPath, "FOLDER_PATH")
	str(&c.StorageBackend, "STORAGE_BACKEND")
	str(&c.MinioEndpoint, "MINIO_ENDPOINT")
	str(&c.MinioAccessKey, "MINIO_ACCESS_KEY")
	str(&c.MinioSecretKey, "MINIO_SECRET_KEY")
	str(&c.MinioBucket, "MINIO_BUCKET")
	str(&c.LogLevel, "LOG_LEVEL")

	if v, err := strconv.ParseBool(os.Getenv("MINIO_USE_SSL")); err == nil {
		c.MinioUseSSL = v
	}
	if v, err := time.ParseDuration(os.Getenv("SESSION_TTL")); err == nil && v > 0 {
		c.SessionTTL = v
	}
	if v, err := strconv.Atoi(os.Getenv("WORKER_CONCURRENCY")); err == nil && v > 0 {
		c.WorkerConcurrency = v
	}
}

func str(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// MongoURI builds the connection string for the document store.
func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s", c.DBHost, c.DBPort)
}

// RedisAddr returns host:port of the key-value store.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
