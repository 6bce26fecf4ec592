// Package config loads the server settings from defaults, an optional
// YAML file and RELMAN_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAddr          = ":8080"
	defaultAPIBaseURL    = "http://localhost:8000"
	defaultAppName       = "Relman"
	defaultLogLevel      = "info"
	defaultStatusTimeout = 3 * time.Second
)

type Config struct {
	Addr          string        `mapstructure:"addr"`
	APIBaseURL    string        `mapstructure:"api-base-url"`
	AppName       string        `mapstructure:"app-name"`
	LogLevel      string        `mapstructure:"log-level"`
	LogHuman      bool          `mapstructure:"log-human"`
	StatusTimeout time.Duration `mapstructure:"status-timeout"`

	// ConfigPath is the file that was read, if any.
	ConfigPath string `mapstructure:"-"`
}

// Load reads the configuration. An explicit configPath must exist; without
// one, relman.yml in the working directory is used when present.
func Load(configPath string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix("RELMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", defaultAddr)
	v.SetDefault("api-base-url", defaultAPIBaseURL)
	v.SetDefault("app-name", defaultAppName)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-human", true)
	v.SetDefault("status-timeout", defaultStatusTimeout)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("relman")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || (!errors.As(err, &notFound) && !os.IsNotExist(err)) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default away.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("invalid addr: empty")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api-base-url: %q", c.APIBaseURL)
	}
	if c.StatusTimeout <= 0 {
		return fmt.Errorf("invalid status-timeout: %s", c.StatusTimeout)
	}
	return nil
}
