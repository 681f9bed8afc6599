package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/healthvault")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDev() {
		t.Errorf("expected development default, got %s", cfg.Env)
	}
	if cfg.MaxUploadBytes != 5*1024*1024 {
		t.Errorf("expected 5 MiB upload default, got %d", cfg.MaxUploadBytes)
	}
	if cfg.UploadDir != "./uploads" {
		t.Errorf("expected default upload dir, got %s", cfg.UploadDir)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/healthvault")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("MAIL_FROM", "noreply@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("expected production mode")
	}
	if cfg.SMTPHost != "smtp.example.com" {
		t.Errorf("unexpected smtp host: %s", cfg.SMTPHost)
	}
}

func TestValidate_ProductionNeedsSigningKey(t *testing.T) {
	cfg := &Config{Env: "production", MaxUploadBytes: 1024}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for production without signing key")
	}

	cfg.AuthSigningKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DevIsPermissive(t *testing.T) {
	cfg := &Config{Env: "development", MaxUploadBytes: 1024}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_MailFromRequiredWithSMTP(t *testing.T) {
	cfg := &Config{Env: "development", MaxUploadBytes: 1024, SMTPHost: "smtp.example.com"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when SMTP_HOST set without MAIL_FROM")
	}

	cfg.MailFrom = "noreply@example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_UploadBytesPositive(t *testing.T) {
	cfg := &Config{Env: "development", MaxUploadBytes: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive MAX_UPLOAD_BYTES")
	}
}
