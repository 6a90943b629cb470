package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolioctl/internal/config"
)

func TestLoadDefaultsWithEnvCredentials(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvAPIURL, "https://example.com/wp-json/wp/v2")
	t.Setenv(config.EnvAPIToken, "secret")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantRoot := filepath.Join(tempHome, "portfolio", "bulk-upload-media")
	if cfg.Paths.MediaRoot != wantRoot {
		t.Fatalf("unexpected media root: got %q want %q", cfg.Paths.MediaRoot, wantRoot)
	}
	if cfg.API.BaseURL != "https://example.com/wp-json/wp/v2" {
		t.Fatalf("expected base URL from env, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "secret" {
		t.Fatalf("expected token from env, got %q", cfg.API.Token)
	}
	if cfg.API.AuthScheme != "basic" {
		t.Fatalf("unexpected auth scheme: %q", cfg.API.AuthScheme)
	}
	if cfg.Resolver.Strategy != "id" {
		t.Fatalf("unexpected resolver strategy: %q", cfg.Resolver.Strategy)
	}
	if cfg.Pacing.LookupDelayMS != 300 || cfg.Pacing.UploadDelayMS != 500 {
		t.Fatalf("unexpected pacing defaults: %+v", cfg.Pacing)
	}
}

func TestLoadReadsConfigFileAndEnvWins(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "env-token")

	path := filepath.Join(tempHome, "config.toml")
	content := strings.Join([]string{
		"[api]",
		`base_url = "https://file.example/api/"`,
		`token = "file-token"`,
		`auth_scheme = "Bearer"`,
		"",
		"[resolver]",
		`strategy = "slug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.API.BaseURL != "https://file.example/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "env-token" {
		t.Fatalf("expected env token to win, got %q", cfg.API.Token)
	}
	if cfg.API.AuthScheme != "bearer" {
		t.Fatalf("expected auth scheme lowered, got %q", cfg.API.AuthScheme)
	}
	if cfg.Resolver.Strategy != "slug" {
		t.Fatalf("unexpected resolver strategy: %q", cfg.Resolver.Strategy)
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error for missing base URL")
	}

	t.Setenv(config.EnvAPIURL, "https://example.com")
	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestLoadRejectsBadEnums(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvAPIURL, "https://example.com")
	t.Setenv(config.EnvAPIToken, "secret")

	path := filepath.Join(tempHome, "config.toml")
	if err := os.WriteFile(path, []byte("[resolver]\nstrategy = \"guess\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown resolver strategy")
	}
}
