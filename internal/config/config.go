package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Host      string
	Port      string
	Env       string
	SecretKey []byte

	MongoURI    string
	MongoDB     string
	PostgresDSN string

	RedisAddr     string
	RedisPassword string

	StaticDir      string
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	AllowedOrigins []string
	RequireAuth    bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Host:           getenv("HOST", "0.0.0.0"),
		Port:           getenv("PORT", "5000"),
		Env:            getenv("APP_ENV", "production"),
		MongoURI:       getenv("MONGODB_URI", ""),
		MongoDB:        getenv("DB_NAME", ""),
		PostgresDSN:    getenv("POSTGRES_DSN", ""),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		StaticDir:      getenv("STATIC_DIR", "static"),
		UploadDir:      getenv("UPLOAD_DIR", "static/uploads"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "thumbnails"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "")),
		RequireAuth:    getenv("REQUIRE_AUTH", "false") == "true",
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("config: MONGODB_URI is required")
	}
	if cfg.MongoDB == "" {
		return nil, errors.New("config: DB_NAME is required")
	}

	secret := getenv("SECRET_KEY", "")
	if secret == "" {
		return nil, errors.New("config: SECRET_KEY is required")
	}
	key, err := hex.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("config: SECRET_KEY must be hex encoded: %w", err)
	}
	cfg.SecretKey = key

	return cfg, nil
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) Development() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
