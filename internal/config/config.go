package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates client configuration values.
type Config struct {
	Graph   GraphConfig   `mapstructure:"graph"`
	Arrow   ArrowConfig   `mapstructure:"arrow"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GraphConfig describes connectivity to the database serving procedure calls.
type GraphConfig struct {
	URI              string        `mapstructure:"uri"`
	Database         string        `mapstructure:"database"`
	Username         string        `mapstructure:"username"`
	Password         string        `mapstructure:"password"`
	MaxConnections   int           `mapstructure:"max_connections"`
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
}

// ArrowConfig describes connectivity to a session's Flight endpoint.
type ArrowConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	TLS          bool          `mapstructure:"tls"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"` // text|json
	IncludeCaller bool   `mapstructure:"include_caller"`
}

const (
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultProgressInterval = 500 * time.Millisecond
	defaultArrowPort        = 8491
	defaultPollInterval     = 200 * time.Millisecond
)

// ErrNoEndpoint is returned by Validate when neither transport is configured.
var ErrNoEndpoint = errors.New("either graph.uri or arrow.host must be set")

var envBindings = map[string]string{
	"graph.uri":               "GRAPH_URI",
	"graph.database":          "GRAPH_DATABASE",
	"graph.username":          "GRAPH_USERNAME",
	"graph.password":          "GRAPH_PASSWORD",
	"graph.max_connections":   "GRAPH_MAX_CONNECTIONS",
	"graph.progress_interval": "PROGRESS_POLL_INTERVAL",
	"arrow.host":              "ARROW_HOST",
	"arrow.port":              "ARROW_PORT",
	"arrow.tls":               "ARROW_TLS",
	"arrow.username":          "ARROW_USERNAME",
	"arrow.password":          "ARROW_PASSWORD",
	"arrow.poll_interval":     "ARROW_POLL_INTERVAL",
	"logging.level":           "LOG_LEVEL",
	"logging.format":          "LOG_FORMAT",
	"logging.include_caller":  "LOG_INCLUDE_CALLER",
}

// Load reads configuration from defaults, the optional file at path and
// environment variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to connect.
func (c Config) Validate() error {
	if c.Graph.URI == "" && c.Arrow.Host == "" {
		return ErrNoEndpoint
	}
	if c.Arrow.Host != "" && (c.Arrow.Port <= 0 || c.Arrow.Port > 65535) {
		return fmt.Errorf("arrow port %d is out of range", c.Arrow.Port)
	}
	if c.Graph.MaxConnections < 0 {
		return fmt.Errorf("graph max_connections must not be negative, got %d", c.Graph.MaxConnections)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging format must be 'text' or 'json', got %q", c.Logging.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graph.max_connections", defaultGraphMaxSessions)
	v.SetDefault("graph.progress_interval", defaultProgressInterval)
	v.SetDefault("arrow.port", defaultArrowPort)
	v.SetDefault("arrow.tls", true)
	v.SetDefault("arrow.poll_interval", defaultPollInterval)
	v.SetDefault("logging.level", defaultLoggingLevel)
	v.SetDefault("logging.format", defaultLoggingFormat)
	v.SetDefault("logging.include_caller", false)
}
