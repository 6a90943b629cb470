package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Environment variables that override file-based settings. The API credential
// is deliberately env-first so it never has to live in the config file.
const (
	EnvAPIURL   = "PORTFOLIO_API_URL"
	EnvAPIToken = "PORTFOLIO_API_TOKEN"
)

// Paths contains directory and file location configuration.
type Paths struct {
	MediaRoot string `toml:"media_root"`
	LogDir    string `toml:"log_dir"`
	IndexPath string `toml:"index_path"`
	CSVFile   string `toml:"csv_file"`
}

// API contains the Content API connection settings.
type API struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	AuthScheme     string `toml:"auth_scheme"`
	ContentType    string `toml:"content_type"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Resolver selects the remote-existence strategy for non-numeric filenames.
type Resolver struct {
	Strategy string `toml:"strategy"`
}

// Pacing contains request pacing and rate limiting settings. The fixed delays
// mirror the remote service's tolerance; the token bucket bounds overall rate.
type Pacing struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	LookupDelayMS     int     `toml:"lookup_delay_ms"`
	UploadDelayMS     int     `toml:"upload_delay_ms"`
	RecordDelayMS     int     `toml:"record_delay_ms"`
	ProjectDelayMS    int     `toml:"project_delay_ms"`
}

// Screenshots contains settings for the viewport capture command.
type Screenshots struct {
	Browser           string `toml:"browser"`
	NavigationTimeout int    `toml:"navigation_timeout"`
	SettleDelayMS     int    `toml:"settle_delay_ms"`
	FallbackDelayMS   int    `toml:"fallback_delay_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration for portfolioctl.
//
// Sections by subsystem:
//   - Paths: media root, logs, media index, default CSV
//   - API: Content API base URL, credential, auth scheme
//   - Resolver: existence-check strategy (id or slug)
//   - Pacing: fixed delays and token-bucket rate limiting
//   - Screenshots: headless browser capture settings
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	API         API         `toml:"api"`
	Resolver    Resolver    `toml:"resolver"`
	Pacing      Pacing      `toml:"pacing"`
	Screenshots Screenshots `toml:"screenshots"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/portfolioctl/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// variables (optionally sourced from a .env file in the working directory)
// override the API base URL and token. The returned config has all path
// fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvironment(&cfg)

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// applyEnvironment overlays env-supplied credentials on top of the file
// values. A .env file beside the working directory is honored when present.
func applyEnvironment(cfg *Config) {
	_ = godotenv.Load()

	if value := strings.TrimSpace(os.Getenv(EnvAPIURL)); value != "" {
		cfg.API.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvAPIToken)); value != "" {
		cfg.API.Token = value
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("portfolioctl.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs. The media root is
// not created here: a missing media root means "no media", not an error.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	if dir := filepath.Dir(c.Paths.IndexPath); strings.TrimSpace(dir) != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes the embedded sample configuration to the target path.
func CreateSample(target string) error {
	if err := os.WriteFile(target, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves ~ prefixes and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
