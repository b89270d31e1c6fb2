package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/pagegrid/pagegrid/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	Pagegrid *Pagegrid `yaml:"pagegrid"`
	file     *Pagegrid
	path     string
	mx       sync.RWMutex
}

// NewConfig creates a new Config with default settings.
func NewConfig() *Config {
	return &Config{
		Pagegrid: NewPagegrid(),
	}
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.path
}

// Load loads the configuration from the given path.
// If the file doesn't exist and force is false, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.path = path
	if force {
		if err := data.MustLoadYAML(path, c); err != nil {
			return err
		}
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
		if err := data.LoadYAML(path, c); err != nil {
			return fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}
	if c.Pagegrid == nil {
		c.Pagegrid = NewPagegrid()
	}

	return nil
}

// Save saves the configuration to the path it was loaded from.
// If force is false, only saves if the file already exists. Once refined,
// the settings prior to the cli flags are saved.
func (c *Config) Save(force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	path := c.path
	if path == "" {
		path = AppConfigFile
	}
	if path == "" {
		return fmt.Errorf("no config file path configured")
	}

	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}

	out := c
	if c.file != nil {
		out = &Config{Pagegrid: c.file}
	}
	if err := data.SaveYAML(path, out); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags and validates the final configuration.
// Precedence is CLI flags > config file > defaults.
func (c *Config) Refine(flags *data.Flags) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Pagegrid == nil {
		return fmt.Errorf("config.Pagegrid is nil")
	}
	if c.file == nil {
		c.file = c.Pagegrid.Clone()
	}
	c.Pagegrid.Override(flags)

	if err := c.Pagegrid.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
