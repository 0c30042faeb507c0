package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "BUDGET_"

	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

type Config struct {
	HTTPPort       string `koanf:"http_port"`
	LogLevel       string `koanf:"log_level"`
	AllowedOrigins string `koanf:"allowed_origins"`

	StorageBackend   string `koanf:"storage_backend"`
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`

	OperatorWorkers int `koanf:"operator_workers"`

	OpenAIAPIKey  string        `koanf:"openai_api_key"`
	OpenAIBaseURL string        `koanf:"openai_base_url"`
	OpenAIModel   string        `koanf:"openai_model"`
	OpenAITimeout time.Duration `koanf:"openai_timeout"`
}

// In all cases the default behavior should be for the docker compose setup
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"http_port":         "9446",
		"log_level":         "info",
		"allowed_origins":   "http://localhost:3000",
		"storage_backend":   StorageBackendPostgres,
		"postgres_address":  "localhost",
		"postgres_port":     "5433",
		"postgres_db":       "postgres",
		"postgres_username": "postgres",
		"postgres_password": "testpassword",
		"operator_workers":  4,
		"openai_api_key":    "",
		"openai_base_url":   "https://api.openai.com/v1",
		"openai_model":      "gpt-3.5-turbo-instruct",
		"openai_timeout":    "10s",
	}
}

// ProcessEnvironmentVariables loads the defaults overlaid with the environment.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load("")
}

// Load layers defaults, the optional YAML file at path, and the environment.
// Unprefixed POSTGRES_* variables are honored for the compose setup;
// BUDGET_* variables take precedence over everything.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider("POSTGRES_", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load postgres environment: %w", err)
	}

	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		return fmt.Errorf("config: unknown storage_backend %q", c.StorageBackend)
	}

	if c.OperatorWorkers < 1 {
		return fmt.Errorf("config: operator_workers must be at least 1, got %d", c.OperatorWorkers)
	}

	if c.HTTPPort == "" {
		return fmt.Errorf("config: http_port is required")
	}

	return nil
}

// Origins splits AllowedOrigins on commas.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
