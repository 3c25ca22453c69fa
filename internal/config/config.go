package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Rules   RulesConfig   `yaml:"rules"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	Mode            string        `yaml:"mode"             env:"GIN_MODE"                env-default:"release"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"10485760"`
}

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// StorageConfig selects and configures the key/value backend.
type StorageConfig struct {
	Driver        string        `yaml:"driver"         env:"STORAGE_DRIVER"    env-default:"sqlite"`
	Namespace     string        `yaml:"namespace"      env:"STORAGE_NAMESPACE" env-default:"farm-advisory"`
	Path          string        `yaml:"path"           env:"STORAGE_PATH"      env-default:"farm-advisory.db"`
	DSN           string        `yaml:"dsn"            env:"STORAGE_DSN"`
	RedisAddr     string        `yaml:"redis_addr"     env:"REDIS_ADDR"        env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"REDIS_DB"          env-default:"0"`
	Timeout       time.Duration `yaml:"timeout"        env:"STORAGE_TIMEOUT"   env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RulesConfig points at replacement rule tables. Empty paths use the
// built-in tables.
type RulesConfig struct {
	CropsPath string `yaml:"crops_path" env:"RULES_CROPS_PATH"`
	WaterPath string `yaml:"water_path" env:"RULES_WATER_PATH"`
}
