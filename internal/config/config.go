package config

import (
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "VERBROOTS"

// Config holds all configuration for the verbroots CLI.
type Config struct {
	Dict          string `mapstructure:"dict"`
	DatabaseURL   string `mapstructure:"database_url"`
	RedisURL      string `mapstructure:"redis_url"`
	Workers       int    `mapstructure:"workers"`
	LogJSON       bool   `mapstructure:"log_json"`
	Verbose       bool   `mapstructure:"verbose"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dict", "dict_verbs.json")
	v.SetDefault("database_url", "postgres://localhost:5432/verbroots?sslmode=disable")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("log_json", false)
	v.SetDefault("verbose", false)
	v.SetDefault("migrations_dir", "migrations")
}

// New returns a viper instance with defaults and VERBROOTS_* environment
// binding. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the optional config file and unmarshals v. Precedence from
// lowest to highest: defaults, file, environment, bound flags.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
