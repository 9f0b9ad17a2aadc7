// Package frameworkconfig loads the framework-level configuration: the
// settings App.New itself needs (queue capacity, component profile, log
// level, optional Sentry DSN). It is distinct from business config, which
// components read back from config.Store by type.
package frameworkconfig

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"microbus/errors"
	"microbus/logger"
)

// Config is the framework-level configuration surface.
type Config struct {
	QueueCapacity int    `yaml:"queue_capacity" mapstructure:"queue_capacity"`
	Profile       string `yaml:"profile"`
	Logging       struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Sentry struct {
		DSN string `yaml:"dsn"`
	} `yaml:"sentry"`
	ShutdownLinger time.Duration `yaml:"shutdown_linger" mapstructure:"shutdown_linger"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		QueueCapacity:  64,
		Profile:        "*",
		ShutdownLinger: 2 * time.Second,
	}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"

	return cfg
}

// Load first loads a .env file from the working directory, if present,
// into the process environment via godotenv, then reads path (YAML) over
// the defaults; MICROBUS_-prefixed environment variables override the keys
// the file sets. A missing file at path is not an error — it simply
// yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: loading .env: %w", errors.ErrInvalidFrameworkConfig, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("%w: reading %s: %w", errors.ErrInvalidFrameworkConfig, path, err)
	}

	// An auxiliary structural parse catches malformed YAML before viper's
	// more permissive unmarshal gets a chance to silently drop fields.
	var probe yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", errors.ErrInvalidFrameworkConfig, path, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", errors.ErrInvalidFrameworkConfig, path, err)
	}

	v.SetEnvPrefix("MICROBUS")
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling %s: %w", errors.ErrInvalidFrameworkConfig, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidFrameworkConfig, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", c.QueueCapacity)
	}

	if c.Profile == "" {
		return fmt.Errorf("profile must not be empty")
	}

	return nil
}

// WatchForChanges watches path and logs a warning on every write, rather
// than reloading — this system never applies a changed framework config
// to a running App. The caller is responsible for closing the returned
// watcher.
func WatchForChanges(path string, log logger.Logger) (*fsnotify.Watcher, error) {
	if log == nil {
		log = logger.Noop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidFrameworkConfig, err)
	}

	if err := w.Add(path); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%w: watching %s: %w", errors.ErrInvalidFrameworkConfig, path, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}

				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					log.Warn().Str("file", path).Msg("config file changed on disk; restart required to apply")
				}
			case watchErr, ok := <-w.Errors:
				if !ok {
					return
				}

				log.Warn().Err(watchErr).Msg("config watcher error")
			}
		}
	}()

	return w, nil
}
