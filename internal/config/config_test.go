package config

import (
	"os"
	"testing"
)

func unsetTimecardEnv() {
	_ = os.Unsetenv("TIMECARD_BUILD_TARGET")
	_ = os.Unsetenv("TIMECARD_DB_DRIVER")
	_ = os.Unsetenv("TIMECARD_POSTGRES_DSN")
	_ = os.Unsetenv("TIMECARD_GOOGLE_GEOCODING_API_KEY")
}

func TestConfigLoad_Defaults(t *testing.T) {
	unsetTimecardEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.BuildTarget != "local" || cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected default build config: %+v", cfg)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.HTTPPort)
	}
	if cfg.NominatimURL == "" {
		t.Fatalf("nominatim URL default missing")
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	unsetTimecardEnv()
	_ = os.Setenv("TIMECARD_HTTP_PORT", "9191")
	defer func() { _ = os.Unsetenv("TIMECARD_HTTP_PORT") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9191 {
		t.Fatalf("port env override failed, got %d", cfg.HTTPPort)
	}
}

func TestResolveDefaults_CloudRequiresDSN(t *testing.T) {
	cfg := &Config{BuildTarget: "cloud", DBDriver: "auto"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for cloud target without DSN")
	}

	cfg = &Config{BuildTarget: "cloud", DBDriver: "auto", PostgresDSN: "postgres://x"}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve defaults: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("expected postgres driver, got %s", cfg.DBDriver)
	}
}

func TestResolveDefaults_RejectsUnknownTarget(t *testing.T) {
	cfg := &Config{BuildTarget: "edge"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for unknown build target")
	}
}

func TestResolveDefaults_ExplicitDriverWins(t *testing.T) {
	cfg := &Config{BuildTarget: "cloud", DBDriver: "sqlite"}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("resolve defaults: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("explicit driver overridden: %s", cfg.DBDriver)
	}
}
