// Package config loads runtime settings for the hello function from the
// process environment, optionally seeded from dotenv files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/janisto/hello-function/internal/greeting"
)

// Environment variable names.
const (
	EnvEnvironment       = "AZURE_FUNCTIONS_ENVIRONMENT"
	EnvCustomHandlerPort = "FUNCTIONS_CUSTOMHANDLER_PORT"
	EnvPort              = "PORT"
	EnvRoutePrefix       = "ROUTE_PREFIX"
	EnvGreetingSuffix    = "GREETING_SUFFIX"
	EnvRuntimeVersion    = "RUNTIME_VERSION"
)

// DefaultPort is used when neither the custom handler port nor PORT is set.
const DefaultPort = 8080

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Environment    string
	Port           int
	RoutePrefix    string
	Suffix         string
	RuntimeVersion string
}

// Load reads dotenv files (missing ones are skipped, variables already present
// in the process win) and then resolves the configuration from the environment.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv resolves the configuration from the current process environment.
func FromEnv() (Config, error) {
	port, err := parsePort(firstNonEmpty(os.Getenv(EnvCustomHandlerPort), os.Getenv(EnvPort)))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Environment:    envOr(EnvEnvironment, greeting.DefaultEnvironment),
		Port:           port,
		RoutePrefix:    NormalizePrefix(os.Getenv(EnvRoutePrefix)),
		Suffix:         strings.TrimSpace(os.Getenv(EnvGreetingSuffix)),
		RuntimeVersion: strings.TrimSpace(os.Getenv(EnvRuntimeVersion)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that would prevent the server from starting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	return nil
}

// Greeting projects the settings the greeting handler needs.
func (c Config) Greeting() greeting.Settings {
	return greeting.Settings{
		Environment:    c.Environment,
		RuntimeVersion: c.RuntimeVersion,
		Suffix:         c.Suffix,
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// NormalizePrefix turns "api", "/api/" or "/api" into "/api". Empty and "/" mean no prefix.
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

func parsePort(raw string) (int, error) {
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", raw, err)
	}
	return port, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
