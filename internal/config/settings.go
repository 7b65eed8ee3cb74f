package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. VCF_SERVER_ADDRESS
	EnvPrefix = "VCF"

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultOutputFormat  = "console"
	DefaultServerAddress = ":8080"
	DefaultMaxBodySize   = 1 << 20
	DefaultReadTimeout   = 10 * time.Second
)

// Settings holds runtime options for the CLI and server. Claim data lives in
// claim files, not here.
type Settings struct {
	Logging LoggingSettings `mapstructure:"logging"`
	Output  OutputSettings  `mapstructure:"output"`
	Server  ServerSettings  `mapstructure:"server"`
}

// LoggingSettings holds logging configuration options
type LoggingSettings struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// OutputSettings holds the default report format
type OutputSettings struct {
	Format string `mapstructure:"format"`
}

// ServerSettings defines runtime parameters for the HTTP API
type ServerSettings struct {
	Address     string        `mapstructure:"address"`
	MaxBodySize int           `mapstructure:"max_body_size"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// DefaultSettings returns the settings used when no file or environment overrides exist
func DefaultSettings() *Settings {
	return &Settings{
		Logging: LoggingSettings{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Output:  OutputSettings{Format: DefaultOutputFormat},
		Server: ServerSettings{
			Address:     DefaultServerAddress,
			MaxBodySize: DefaultMaxBodySize,
			ReadTimeout: DefaultReadTimeout,
		},
	}
}

// LoadSettings loads settings from an optional YAML file and VCF_* environment
// variables. A missing file is not an error; defaults fill any gaps.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.max_body_size", defaults.Server.MaxBodySize)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to stat settings file: %w", err)
			}
		} else {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading settings file: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks enumerated settings and limits
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if s.Server.MaxBodySize <= 0 {
		return fmt.Errorf("server max_body_size must be positive")
	}
	if s.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	return nil
}
