package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/janisto/hello-function/internal/greeting"
)

var allKeys = []string{
	EnvEnvironment,
	EnvCustomHandlerPort,
	EnvPort,
	EnvRoutePrefix,
	EnvGreetingSuffix,
	EnvRuntimeVersion,
}

// clearEnv blanks every variable the loader reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Environment: "local", Port: 8080}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEnvironment, "Production")
	t.Setenv(EnvPort, "3000")
	t.Setenv(EnvRoutePrefix, "api/")
	t.Setenv(EnvGreetingSuffix, "  Shipped.  ")
	t.Setenv(EnvRuntimeVersion, "go1.25.5 linux/amd64")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{
		Environment:    "Production",
		Port:           3000,
		RoutePrefix:    "/api",
		Suffix:         "Shipped.",
		RuntimeVersion: "go1.25.5 linux/amd64",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomHandlerPortWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "3000")
	t.Setenv(EnvCustomHandlerPort, "7071")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7071 {
		t.Fatalf("expected custom handler port 7071, got %d", cfg.Port)
	}
}

func TestInvalidPort(t *testing.T) {
	for _, raw := range []string{"http", "0", "70000", "-1"} {
		t.Run(raw, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvPort, raw)
			if _, err := FromEnv(); err == nil || !strings.Contains(err.Error(), "invalid port") {
				t.Fatalf("expected invalid port error, got %v", err)
			}
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	content := "AZURE_FUNCTIONS_ENVIRONMENT=Staging\nPORT=9090\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvEnvironment)
		_ = os.Unsetenv(EnvPort)
	})

	cfg, err := Load(file, filepath.Join(dir, "missing.env"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "Staging" || cfg.Port != 9090 {
		t.Fatalf("dotenv values not applied: %+v", cfg)
	}
}

func TestLoadDotenvDoesNotOverrideProcessEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEnvironment, "Production")
	file := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(file, []byte("AZURE_FUNCTIONS_ENVIRONMENT=Staging\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "Production" {
		t.Fatalf("expected process env to win, got %q", cfg.Environment)
	}
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error when the env file is a directory")
	}
}

func TestNormalizePrefix(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"/":       "",
		"api":     "/api",
		"/api":    "/api",
		"/api/":   "/api",
		" v1/fn ": "/v1/fn",
	}
	for in, want := range tests {
		if got := NormalizePrefix(in); got != want {
			t.Errorf("NormalizePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGreetingProjection(t *testing.T) {
	cfg := Config{Environment: "Production", Suffix: "Done.", RuntimeVersion: "go1.25"}
	want := greeting.Settings{Environment: "Production", Suffix: "Done.", RuntimeVersion: "go1.25"}
	if diff := cmp.Diff(want, cfg.Greeting()); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{Port: 7071}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Config{}).Validate(); err == nil {
		t.Fatal("expected zero port to be rejected")
	}
}
