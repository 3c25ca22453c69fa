package config

import (
	"fmt"
	"strings"

	"farm-advisory/internal/validation"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if !validation.IsInRange(float64(c.Server.Port), 1, 65535) {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test (got %q)", c.Server.Mode)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if !validation.IsNotEmpty(s.Namespace) {
		return fmt.Errorf("namespace is required")
	}

	switch s.Driver {
	case DriverSQLite:
		if !validation.IsNotEmpty(s.Path) {
			return fmt.Errorf("path is required for the sqlite driver")
		}
	case DriverPostgres:
		if !validation.IsNotEmpty(s.DSN) {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
	case DriverRedis:
		if !validation.IsNotEmpty(s.RedisAddr) {
			return fmt.Errorf("redis_addr is required for the redis driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown driver %q", s.Driver)
	}

	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", s.Timeout)
	}
	return nil
}
