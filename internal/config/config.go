// Package config loads settings shared by the reportobello binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/reportobello/reportobello-go/client"
)

// Prefix is prepended to every environment variable name.
const Prefix = "REPORTOBELLO"

// Config holds the configuration for the CLI and the MCP server.
// Environment variables are parsed from the REPORTOBELLO_ prefix.
type Config struct {
	APIKey      string        `envconfig:"API_KEY"`
	Host        string        `envconfig:"HOST" default:"https://reportobello.com"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`

	// MCP server
	MCPAddr         string        `envconfig:"MCP_ADDR" default:":11546"`
	MCPServerName   string        `envconfig:"MCP_SERVER_NAME" default:"reportobello-mcp"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// New creates a Config from the environment.
// Example: REPORTOBELLO_API_KEY, REPORTOBELLO_HOST
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout < 0 {
		return nil, fmt.Errorf("invalid %s_HTTP_TIMEOUT: %s", Prefix, cfg.HTTPTimeout)
	}
	return &cfg, nil
}

// Level parses LogLevel. An empty value means info.
func (c *Config) Level() (zerolog.Level, error) {
	raw := strings.TrimSpace(strings.ToLower(c.LogLevel))
	if raw == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid %s_LOG_LEVEL %q: %w", Prefix, c.LogLevel, err)
	}
	return lvl, nil
}

// ClientOptions maps the config onto client options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{client.WithBaseURL(c.Host)}
	if c.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(c.HTTPTimeout))
	}
	if c.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	return opts
}

// NewClient builds a client from the config.
func (c *Config) NewClient() (*client.Client, error) {
	return client.New(c.APIKey, c.ClientOptions()...)
}
