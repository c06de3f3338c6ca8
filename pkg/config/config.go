package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures service level configuration loaded from config.yaml.
// Deployment settings may additionally be overridden through environment
// variables (see ApplyEnv), which take precedence over the file.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Upload   UploadConfig   `yaml:"upload"`
	Storage  StorageConfig  `yaml:"storage"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// CORSConfig defines the cross-origin allow-list.
// Localhost origins are always admitted in addition to this list.
type CORSConfig struct {
	AllowOrigins     []string `yaml:"allow_origins"`
	AllowMethods     string   `yaml:"allow_methods"`
	AllowHeaders     string   `yaml:"allow_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// UploadConfig defines file upload constraints.
type UploadConfig struct {
	MaxSize        int64 `yaml:"max_size"`
	TimeoutSeconds int   `yaml:"timeout_seconds"`
}

// Timeout returns the bound on each object-store or catalog call.
func (c UploadConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StorageConfig selects and configures the object-store backend.
type StorageConfig struct {
	Driver     string           `yaml:"driver"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	S3         S3Config         `yaml:"s3"`
}

// CloudinaryConfig holds Cloudinary account credentials.
type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

// Configured reports whether the full credential triple is present.
func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// S3Config holds S3-compatible storage settings.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PathStyle bool   `yaml:"path_style"`
}

// DatabaseConfig defines the catalog database backend configuration.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite specific settings. Path ":memory:" selects
// the in-memory catalog used when no durable database is available.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL specific connection details.
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// PostgresConfig contains PostgreSQL specific connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads a YAML configuration file from the provided path.
// It searches in the current working directory first, then next to the
// binary executable, then applies environment overrides.
func Load(name string) (*Config, error) {
	cfg := defaultConfig()

	configPath := findConfigFile(name)
	if configPath == "" {
		log.Printf("Warning: config file %q not found, using defaults", name)
		cfg.ApplyEnv()
		return cfg, nil
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parsed Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&parsed)
	parsed.ApplyEnv()
	return &parsed, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":5000"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = "data/catalog.db"
	}
	if cfg.CORS.AllowMethods == "" {
		cfg.CORS.AllowMethods = "GET,POST,PATCH,DELETE,OPTIONS"
	}
	if cfg.CORS.AllowHeaders == "" {
		cfg.CORS.AllowHeaders = "*"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.TimeoutSeconds == 0 {
		cfg.Upload.TimeoutSeconds = 30
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "cloudinary"
	}
}

// ApplyEnv overrides deployment settings from environment variables so the
// service can run unmodified on platforms that only offer env configuration.
func (cfg *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Address = ":" + strings.TrimPrefix(port, ":")
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowOrigins = SplitOrigins(origins)
	}
	if name := os.Getenv("CLOUDINARY_CLOUD_NAME"); name != "" {
		cfg.Storage.Cloudinary.CloudName = name
	}
	if key := os.Getenv("CLOUDINARY_API_KEY"); key != "" {
		cfg.Storage.Cloudinary.APIKey = key
	}
	if secret := os.Getenv("CLOUDINARY_API_SECRET"); secret != "" {
		cfg.Storage.Cloudinary.APISecret = secret
	}
	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		cfg.Database.Driver = driver
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		switch strings.ToLower(cfg.Database.Driver) {
		case "mysql":
			cfg.Database.MySQL.DSN = dsn
		case "postgres", "postgresql":
			cfg.Database.Postgres.DSN = dsn
		default:
			cfg.Database.SQLite.Path = dsn
		}
	}
}

// SplitOrigins parses a comma-separated origin list, dropping blanks.
func SplitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// findConfigFile searches for a config file in the current directory first,
// then next to the binary executable. Returns the full path or empty string.
func findConfigFile(name string) string {
	// 1. Current working directory
	if _, err := os.Stat(name); err == nil {
		abs, _ := filepath.Abs(name)
		return abs
	}

	// 2. Next to the binary executable
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		candidate := filepath.Join(exeDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
