package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds all runtime settings. Values are layered: struct defaults,
// then the optional YAML config file, then CATALOG_-prefixed environment
// variables (e.g. CATALOG_SERVER_PORT overrides server.port).
type Config struct {
	Environment string `koanf:"environment"`
	Hostname    string `koanf:"-"`

	ServerHost string `koanf:"server.host"`
	ServerPort int    `koanf:"server.port"`

	DatabaseFilePath   string `koanf:"database.path"`
	DatabaseDebug      bool   `koanf:"database.debug"`
	DatabaseMaxRetries int    `koanf:"database.max_retries"`

	DatabaseConnectRetryCount int           `koanf:"-"`
	DatabaseConnectRetryDelay time.Duration `koanf:"-"`
	DatabaseBusyTimeout       time.Duration `koanf:"-"`
}

const (
	envPrefix     = "CATALOG_"
	configFileENV = "CATALOG_CONFIG_FILE"
)

// New loads the configuration. The config file path comes from
// CATALOG_CONFIG_FILE and is optional; a missing file falls back to defaults.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		Environment: "development",
		Hostname:    hostname,

		ServerHost: "127.0.0.1",
		ServerPort: 4310,

		DatabaseFilePath:   "./tmp/catalog.sqlite",
		DatabaseMaxRetries: 5,

		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseBusyTimeout:       5 * time.Second,
	}

	k := koanf.New(".")

	if path := os.Getenv(configFileENV); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
	}

	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// Only the first underscore separates the section from the key, so
		// CATALOG_DATABASE_MAX_RETRIES maps to database.max_retries.
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.Environment == "test" {
		loadTestConfig(cfg)
	}

	return cfg, nil
}

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerPort = 0
}
