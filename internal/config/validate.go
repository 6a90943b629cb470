package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/portfolioctl/config.toml"
		}
		return fmt.Errorf("api.base_url is required. Set %s env var or edit %s (create with 'portfolioctl config init')", EnvAPIURL, defaultPath)
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Token == "" {
		return fmt.Errorf("api.token is required. Set %s env var or add it to the config file", EnvAPIToken)
	}
	switch c.API.AuthScheme {
	case "basic", "bearer":
	default:
		return fmt.Errorf("api.auth_scheme must be \"basic\" or \"bearer\", got %q", c.API.AuthScheme)
	}
	return nil
}

func (c *Config) validateResolver() error {
	switch c.Resolver.Strategy {
	case "id", "slug":
		return nil
	default:
		return fmt.Errorf("resolver.strategy must be \"id\" or \"slug\", got %q", c.Resolver.Strategy)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
