package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	cfg, err := Load("non-existent-config.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	assertDefaultConfig(t, cfg)
}

func TestLoadWithPartialConfigAppliesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_DRIVER", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
database:
  driver: ""
  sqlite: {}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Fatalf("expected server address :9090, got %s", cfg.Server.Address)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected database driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Upload.MaxSize != 10*1024*1024 {
		t.Fatalf("expected default max size 10MB, got %d", cfg.Upload.MaxSize)
	}
	if cfg.Storage.Driver != "cloudinary" {
		t.Fatalf("expected default storage driver cloudinary, got %s", cfg.Storage.Driver)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("CORS_ORIGINS", "https://docs.example.com, https://admin.example.com ,")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	cfg := defaultConfig()
	cfg.ApplyEnv()

	if cfg.Server.Address != ":7000" {
		t.Fatalf("expected address :7000, got %s", cfg.Server.Address)
	}
	if len(cfg.CORS.AllowOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORS.AllowOrigins)
	}
	if cfg.CORS.AllowOrigins[0] != "https://docs.example.com" {
		t.Fatalf("unexpected first origin: %s", cfg.CORS.AllowOrigins[0])
	}
	if !cfg.Storage.Cloudinary.Configured() {
		t.Fatalf("expected cloudinary credentials to be configured")
	}
}

func TestCloudinaryConfigured(t *testing.T) {
	partial := CloudinaryConfig{CloudName: "demo", APIKey: "key"}
	if partial.Configured() {
		t.Fatalf("expected partial credentials to report unconfigured")
	}
}

func TestSplitOrigins(t *testing.T) {
	origins := SplitOrigins(" a.example.com ,, b.example.com")
	if len(origins) != 2 || origins[0] != "a.example.com" || origins[1] != "b.example.com" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}

func assertDefaultConfig(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg == nil {
		t.Fatalf("config is nil")
	}
	if cfg.Server.Address != ":5000" {
		t.Fatalf("expected default address :5000, got %s", cfg.Server.Address)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Upload.Timeout() != 30*time.Second {
		t.Fatalf("expected default upload timeout 30s, got %v", cfg.Upload.Timeout())
	}
}
