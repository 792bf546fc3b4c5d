package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Database struct {
	Driver string
	DSN    string
}

type Storage struct {
	Driver        string
	Bucket        string
	LocalRoot     string
	PublicBaseURL string
}

type Config struct {
	Port        string
	Database    Database
	Storage     Storage
	JWTSecret   string
	CORSOrigins string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port: getenv("PORT", "3000"),
		Database: Database{
			Driver: strings.ToLower(getenv("DB_DRIVER", "sqlite")),
			DSN:    getenv("DB_DSN", "database.db"),
		},
		Storage: Storage{
			Driver:        strings.ToLower(getenv("STORAGE_DRIVER", "local")),
			Bucket:        os.Getenv("GCS_BUCKET"),
			LocalRoot:     getenv("STORAGE_LOCAL_ROOT", "."),
			PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		},
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: getenv("CORS_ORIGINS", "*"),
	}
	if cfg.Storage.PublicBaseURL == "" {
		cfg.Storage.PublicBaseURL = "http://localhost:" + cfg.Port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return errors.New("DB_DRIVER must be sqlite or postgres")
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return errors.New("DB_DSN is required for postgres")
	}
	switch c.Storage.Driver {
	case "local":
	case "gcs":
		if c.Storage.Bucket == "" {
			return errors.New("GCS_BUCKET is required when STORAGE_DRIVER=gcs")
		}
	default:
		return errors.New("STORAGE_DRIVER must be local or gcs")
	}
	if c.JWTSecret == "" {
		if c.Database.Driver != "sqlite" {
			return errors.New("JWT_SECRET is not set")
		}
		log.Println("JWT_SECRET is not set, using an insecure development secret")
		c.JWTSecret = "dev-secret"
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
