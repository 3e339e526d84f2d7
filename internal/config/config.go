package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

type ServerConfig struct {
	Port           int           `toml:"port"`
	Environment    string        `toml:"environment"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	QueryTimeout   time.Duration `toml:"query_timeout"`
	CORSOrigins    []string      `toml:"cors_origins"`
}

type DatabaseConfig struct {
	URL         string `toml:"url"`
	AutoMigrate bool   `toml:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret string        `toml:"jwt_secret"`
	TokenTTL  time.Duration `toml:"token_ttl"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StorageConfig contains MinIO settings for listing images
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
	PublicURL string `toml:"public_url"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the development defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			Environment:    "development",
			RequestTimeout: 30 * time.Second,
			QueryTimeout:   10 * time.Second,
			CORSOrigins:    []string{"*"},
		},
		Auth: AuthConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "listing-images",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional TOML file named by
// CONFIG_FILE and finally environment variables (a .env file is loaded first
// when present). Environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		if _, err := toml.DecodeFile(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error

	setString(&c.Server.Environment, "APP_ENV")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Storage.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Storage.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Storage.Bucket, "MINIO_BUCKET")
	setString(&c.Storage.PublicURL, "MINIO_PUBLIC_URL")
	setString(&c.Log.Level, "LOG_LEVEL")

	errs = append(errs,
		setInt(&c.Server.Port, "PORT"),
		setInt(&c.Redis.DB, "REDIS_DB"),
		setBool(&c.Database.AutoMigrate, "DB_AUTO_MIGRATE"),
		setBool(&c.Storage.UseSSL, "MINIO_USE_SSL"),
		setDuration(&c.Auth.TokenTTL, "JWT_TTL"),
		setDuration(&c.Server.RequestTimeout, "REQUEST_TIMEOUT"),
		setDuration(&c.Server.QueryTimeout, "QUERY_TIMEOUT"),
	)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.Server.CORSOrigins = append(c.Server.CORSOrigins, origin)
			}
		}
	}

	return errors.Join(errs...)
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.QueryTimeout <= 0 || c.Server.RequestTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ImageBaseURL is the public prefix of stored listing images
func (s StorageConfig) ImageBaseURL() string {
	base := s.PublicURL
	if base == "" {
		scheme := "http"
		if s.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + s.Endpoint
	}
	return strings.TrimRight(base, "/") + "/" + s.Bucket
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
