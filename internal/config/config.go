// Package config loads sandbox configuration from the environment and
// optional files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sellsense/ef-sandbox/internal/app/seed"
)

// Config carries the runtime settings of the sandbox server.
type Config struct {
	Addr            string        `env:"SANDBOX_ADDR,default=:8080"`
	Scenario        string        `env:"SANDBOX_SCENARIO,default=active-with-recipients"`
	CORSOrigins     string        `env:"SANDBOX_CORS_ORIGINS,default=*"`
	LogLevel        string        `env:"SANDBOX_LOG_LEVEL,default=info"`
	ScenarioCatalog string        `env:"SANDBOX_SCENARIO_CATALOG,default="`
	ReadTimeout     time.Duration `env:"SANDBOX_READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"SANDBOX_WRITE_TIMEOUT,default=30s"`
	ShutdownTimeout time.Duration `env:"SANDBOX_SHUTDOWN_TIMEOUT,default=30s"`
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

// Origins splits the configured CORS origin list.
func (c Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}

// LoadScenarioCatalog reads an optional YAML scenario catalog. It lets a
// deployment relabel the scenarios shown by the discovery endpoint without
// rebuilding. A missing file is not an error.
func LoadScenarioCatalog(path string) ([]seed.Descriptor, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scenario catalog: %w", err)
	}

	var catalog struct {
		Scenarios []seed.Descriptor `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse scenario catalog: %w", err)
	}
	return catalog.Scenarios, nil
}
