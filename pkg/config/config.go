package config

import (
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV = "CONFIG_FILE"
	envPrefix     = "BIBLIOCAT_"
)

type Config struct {
	Environment string `koanf:"environment" default:"development"`

	ServerHost string `koanf:"server_host" default:"127.0.0.1"`
	ServerPort int    `koanf:"server_port" default:"8000"`

	DatabaseFilePath          string        `koanf:"database_file_path" default:"./tmp/data.sqlite"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout" default:"5s"`

	// MediaDir is where uploaded images and bulk-import documents live.
	MediaDir string `koanf:"media_dir" default:"./tmp/media"`

	JWTSecret   string `koanf:"jwt_secret" default:"bibliocat-dev-secret"`
	FrontendURL string `koanf:"frontend_url" default:"http://localhost:5173"`

	Hostname string `koanf:"-"`
}

// New loads the configuration from defaults, then an optional YAML file
// (CONFIG_FILE), then BIBLIOCAT_* environment variables, in that order of
// precedence.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	if path := os.Getenv(configFileENV); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "failed to load config file")
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.Hostname = hostname

	if cfg.Environment == "test" {
		cfg.DatabaseFilePath = ":memory:"
	}

	return cfg, nil
}
