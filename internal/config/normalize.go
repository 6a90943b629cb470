package config

import (
	"fmt"
	"strings"
)

// normalize expands path fields and canonicalizes enum-like settings.
func (c *Config) normalize() error {
	var err error
	if c.Paths.MediaRoot, err = expandPath(c.Paths.MediaRoot); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.IndexPath, err = expandPath(c.Paths.IndexPath); err != nil {
		return err
	}

	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.API.Token = strings.TrimSpace(c.API.Token)
	c.API.AuthScheme = strings.ToLower(strings.TrimSpace(c.API.AuthScheme))
	if c.API.AuthScheme == "" {
		c.API.AuthScheme = defaultAuthScheme
	}
	c.API.ContentType = strings.Trim(strings.TrimSpace(c.API.ContentType), "/")
	if c.API.ContentType == "" {
		c.API.ContentType = defaultContentType
	}
	if c.API.RequestTimeout <= 0 {
		c.API.RequestTimeout = defaultRequestTimeout
	}

	c.Resolver.Strategy = strings.ToLower(strings.TrimSpace(c.Resolver.Strategy))
	if c.Resolver.Strategy == "" {
		c.Resolver.Strategy = defaultResolverStrategy
	}

	if c.Pacing.RequestsPerSecond <= 0 {
		c.Pacing.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.Pacing.Burst <= 0 {
		c.Pacing.Burst = defaultBurst
	}

	if strings.TrimSpace(c.Screenshots.Browser) == "" {
		c.Screenshots.Browser = defaultBrowser
	}
	if c.Screenshots.NavigationTimeout <= 0 {
		c.Screenshots.NavigationTimeout = defaultNavigationTimeout
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	if c.Paths.CSVFile == "" {
		c.Paths.CSVFile = defaultCSVFile
	}

	if err := c.normalizeDelays(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeDelays() error {
	for name, value := range map[string]*int{
		"pacing.lookup_delay_ms":        &c.Pacing.LookupDelayMS,
		"pacing.upload_delay_ms":        &c.Pacing.UploadDelayMS,
		"pacing.record_delay_ms":        &c.Pacing.RecordDelayMS,
		"pacing.project_delay_ms":       &c.Pacing.ProjectDelayMS,
		"screenshots.settle_delay_ms":   &c.Screenshots.SettleDelayMS,
		"screenshots.fallback_delay_ms": &c.Screenshots.FallbackDelayMS,
	} {
		if *value < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}
