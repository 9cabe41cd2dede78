// Package config loads sqlframe settings from a YAML file.
//
// Values may reference environment variables with ${VAR} syntax; a .env
// file next to the process is honored before expansion.
//
// Example:
//
//	database:
//	  driver: postgres
//	  host: ${DB_HOST}
//	  port: 5432
//	  user: ${DB_USER}
//	  password: ${DB_PASSWORD}
//	  database: inventory
//	pool:
//	  max_open_conns: 10
//	  conn_max_lifetime: 30m
//	logging:
//	  level: info
//	  format: json
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"

	"github.com/koustreak/sqlframe"
	"github.com/koustreak/sqlframe/errs"
)

// Config is the root of the YAML document.
type Config struct {
	Database Database `yaml:"database"`
	Pool     Pool     `yaml:"pool"`
	Logging  Logging  `yaml:"logging"`
	Sink     Sink     `yaml:"sink"`
}

// Database mirrors sqlframe.Descriptor plus the echo switch.
type Database struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Echo     bool   `yaml:"echo"`
}

// Pool tunes the connection pool.
type Pool struct {
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime Duration `yaml:"conn_max_idle_time"`
}

// Logging configures the structured logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Sink configures the optional object-store frame sink.
type Sink struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
}

// Duration is a time.Duration that unmarshals from strings like "30m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return errs.Wrap(errs.KindConfiguration, "duration must be a string", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errs.Wrap(errs.KindConfiguration, "invalid duration", err)
	}
	*d = Duration(parsed)
	return nil
}

// Load reads, env-expands, and parses the YAML file at path.
func Load(path string) (*Config, error) {
	// Missing .env is not an error; it only seeds the environment when present.
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "failed to read config file", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "failed to parse config file", err)
	}
	if cfg.Database.Driver == "" {
		return nil, errs.New(errs.KindConfiguration, "database.driver is required")
	}
	return &cfg, nil
}

// URL builds the connection URL from the database section.
func (c *Config) URL() (string, error) {
	return sqlframe.BuildURL(sqlframe.Descriptor{
		Driver:   c.Database.Driver,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Database: c.Database.Database,
	})
}

// Options translates the pool, echo, and logging sections into Open options.
func (c *Config) Options() []sqlframe.Option {
	var opts []sqlframe.Option
	if c.Pool.MaxOpenConns > 0 || c.Pool.MaxIdleConns > 0 {
		opts = append(opts, sqlframe.WithPool(c.Pool.MaxOpenConns, c.Pool.MaxIdleConns))
	}
	if c.Pool.ConnMaxLifetime > 0 || c.Pool.ConnMaxIdleTime > 0 {
		opts = append(opts, sqlframe.WithConnLifetimes(
			time.Duration(c.Pool.ConnMaxLifetime), time.Duration(c.Pool.ConnMaxIdleTime)))
	}
	if c.Database.Echo {
		opts = append(opts, sqlframe.WithEcho())
	}
	return opts
}
