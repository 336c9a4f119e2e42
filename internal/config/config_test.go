package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ZMAIL_CLIENT_ID", "ZMAIL_CLIENT_SECRET", "ZMAIL_REDIRECT_URI",
		"ZMAIL_AUTH_BASE_URL", "ZMAIL_API_BASE_URL", "ZMAIL_DB_PATH",
		"ZMAIL_SEED", "ZMAIL_SEED_MAILBOX", "ZMAIL_SEED_TO_EMAIL",
		"HOST", "PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_FileAndDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `client_id: cid
client_secret: csecret
redirect_uri: http://localhost:8080/oauth/callback
seed:
  enabled: true
  mailbox: devtest@zmail.com
  to_email: dev@example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.ClientID != "cid" || cfg.ClientSecret != "csecret" {
		t.Fatalf("credentials not loaded: %+v", cfg)
	}
	if cfg.AuthBaseURL != DefaultAuthBaseURL || cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if !cfg.Seed.Enabled || cfg.Seed.Mailbox != "devtest@zmail.com" {
		t.Fatalf("seed config not loaded: %+v", cfg.Seed)
	}
	if cfg.Addr() != DefaultHost+":"+DefaultPort {
		t.Fatalf("Addr = %q", cfg.Addr())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("client_id: from-file\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ZMAIL_CLIENT_ID", "from-env")
	t.Setenv("PORT", "9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClientID != "from-env" {
		t.Fatalf("env should win, got %q", cfg.ClientID)
	}
	if cfg.Port != "9999" {
		t.Fatalf("Port = %q", cfg.Port)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load should tolerate a missing file, got %v", err)
	}
	if cfg.AuthBaseURL != DefaultAuthBaseURL {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestValidate_FailsFast(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure without credentials")
	}

	cfg.ClientID = "cid"
	cfg.ClientSecret = "csecret"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure without redirect URI")
	}

	cfg.RedirectURI = "http://localhost:8080/oauth/callback"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
