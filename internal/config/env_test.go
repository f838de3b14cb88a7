package config

import (
	"strings"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_HOST", "DB_NAME", "AUTH_REQUIRED", "REPORT_CONCURRENCY", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.AuthRequired {
		t.Fatalf("AuthRequired should default to false")
	}
	if env.ReportConcurrency != 4 {
		t.Fatalf("ReportConcurrency = %d", env.ReportConcurrency)
	}
	if len(env.CORSAllowedOrigins) != len(defaultOrigins) {
		t.Fatalf("unexpected default origins %v", env.CORSAllowedOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("REPORT_CONCURRENCY", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DB_NAME", "fleet_test")
	t.Setenv("DB_AUTO_MIGRATE", "1")

	env := LoadEnv()
	if !env.AuthRequired {
		t.Fatalf("AuthRequired not parsed")
	}
	if !env.AutoMigrate {
		t.Fatalf("AutoMigrate not parsed")
	}
	if env.ReportConcurrency != 8 {
		t.Fatalf("ReportConcurrency = %d", env.ReportConcurrency)
	}
	if got := strings.Join(env.CORSAllowedOrigins, "|"); got != "https://a.example|https://b.example" {
		t.Fatalf("origins = %q", got)
	}
	if !strings.Contains(env.DSN(), "/fleet_test?") {
		t.Fatalf("DSN missing db name: %s", env.DSN())
	}
}

func TestLoadEnvInvalidConcurrencyFallsBack(t *testing.T) {
	t.Setenv("REPORT_CONCURRENCY", "-2")
	if got := LoadEnv().ReportConcurrency; got != 4 {
		t.Fatalf("ReportConcurrency = %d", got)
	}
}
