// Package config loads process configuration from LAUNCH_* environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envPrefix = "launch"

// Store backends.
const (
	StoreSpanner = "spanner"
	StoreMemory  = "memory"
)

type Config struct {
	GRPCAddr        string        `envconfig:"GRPC_ADDR" default:":50051"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	Store           string `envconfig:"STORE" default:"spanner"`
	SpannerDatabase string `envconfig:"SPANNER_DATABASE" default:"projects/test-project/instances/emulator-instance/databases/test-db"`
	MigrationsDir   string `envconfig:"MIGRATIONS_DIR" default:"migrations"`

	// RedisAddr enables launch notifications over Redis when set.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisChannel  string `envconfig:"REDIS_CHANNEL" default:"product-launches"`

	PostCommitTimeout time.Duration `envconfig:"POST_COMMIT_TIMEOUT" default:"30s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return nil, errors.Wrap(err, "process env config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreSpanner:
		if c.SpannerDatabase == "" {
			return errors.New("spanner database is required for the spanner store")
		}
	case StoreMemory:
	default:
		return errors.Errorf("unknown store %q", c.Store)
	}
	if c.GRPCAddr == "" {
		return errors.New("grpc address is required")
	}
	if c.PostCommitTimeout <= 0 {
		return errors.New("post-commit timeout must be positive")
	}
	return nil
}
