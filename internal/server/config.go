package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	ShutdownTimeout string               `yaml:"shutdownTimeout"`
	ConfigFile      string               `yaml:"configFile"`
	Logging         config.LoggingConfig `yaml:"logging"`
	shutdownTimeout time.Duration
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		ShutdownTimeout: constants.DefaultShutdownTimeout.String(),
		ConfigFile:      constants.DefaultConfigFile,
		Logging:         config.LoggingConfig{},
		shutdownTimeout: constants.DefaultShutdownTimeout,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ShutdownTimeoutDuration returns how long a graceful shutdown may take.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return c.shutdownTimeout
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.ConfigFile == "" {
		c.ConfigFile = constants.DefaultConfigFile
	}

	timeout := strings.TrimSpace(c.ShutdownTimeout)
	if timeout == "" {
		c.shutdownTimeout = constants.DefaultShutdownTimeout
		c.ShutdownTimeout = constants.DefaultShutdownTimeout.String()
		return nil
	}

	d, err := time.ParseDuration(timeout)
	if err != nil {
		return fmt.Errorf("invalid shutdown timeout %q: %w", c.ShutdownTimeout, err)
	}
	if d <= 0 {
		d = constants.DefaultShutdownTimeout
	}
	c.shutdownTimeout = d
	return nil
}
