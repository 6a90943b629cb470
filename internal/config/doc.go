// Package config loads and validates portfolioctl configuration.
//
// Configuration comes from a TOML file (default
// ~/.config/portfolioctl/config.toml, or portfolioctl.toml in the working
// directory) with environment overrides for the Content API base URL and
// credential. Every component receives the resulting Config explicitly;
// nothing reads configuration globals at call time.
package config
