// Package config loads and stores console configuration in the XDG config dir.
// Only non-secret settings are kept here; OAuth credentials come from the
// credential file, the OS keychain or the environment.
//
// Settings are layered: environment variables win over the config file, which
// wins over built-in defaults. Command-line flags are applied on top by cmd.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "tumblr-repl/cli/internal/errors"
	"tumblr-repl/cli/internal/xdg"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultPrompt         = "tumblr > "
	DefaultLogLevel       = "info"
	DefaultAPIBaseURL     = "https://api.tumblr.com"
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds non-sensitive console settings.
type Config struct {
	Prompt         string        `env:"TUMBLR_REPL_PROMPT"`
	LogLevel       string        `env:"TUMBLR_REPL_LOG_LEVEL"`
	APIBaseURL     string        `env:"TUMBLR_API_BASE_URL"`
	RequestTimeout time.Duration `env:"TUMBLR_REPL_TIMEOUT"`
	NoColor        bool
}

// fileConfig is the on-disk representation; durations are stored as strings.
type fileConfig struct {
	Prompt         string `json:"prompt,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
	APIBaseURL     string `json:"api_base_url,omitempty"`
	RequestTimeout string `json:"request_timeout,omitempty"`
	NoColor        bool   `json:"no_color,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Prompt:         DefaultPrompt,
		LogLevel:       DefaultLogLevel,
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from the XDG config file and the environment.
// A missing file is not an error.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(p)
}

// LoadFrom is Load with an explicit config file location.
func LoadFrom(p string) (Config, error) {
	fromFile, err := readFile(p)
	if err != nil {
		return Config{}, err
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ConfigInvalid, "environment", err)
	}
	// NO_COLOR is honoured for any non-empty value, see no-color.org.
	if os.Getenv("NO_COLOR") != "" {
		fromEnv.NoColor = true
	}

	return merge(fromEnv, fromFile, Defaults())
}

// merge folds layers from highest to lowest precedence; earlier layers win.
func merge(layers ...Config) (Config, error) {
	var out Config
	for _, layer := range layers {
		if err := mergo.Merge(&out, layer); err != nil {
			return Config{}, fmt.Errorf("merge config: %w", err)
		}
	}
	return out, nil
}

func readFile(p string) (Config, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ConfigInvalid, p, err)
	}
	c := Config{
		Prompt:     fc.Prompt,
		LogLevel:   fc.LogLevel,
		APIBaseURL: fc.APIBaseURL,
		NoColor:    fc.NoColor,
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return Config{}, apperrors.Wrap(apperrors.ConfigInvalid, p, err)
		}
		c.RequestTimeout = d
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo is Save with an explicit config file location.
func SaveTo(p string, c Config) error {
	fc := fileConfig{
		Prompt:     c.Prompt,
		LogLevel:   c.LogLevel,
		APIBaseURL: c.APIBaseURL,
		NoColor:    c.NoColor,
	}
	if c.RequestTimeout > 0 {
		fc.RequestTimeout = c.RequestTimeout.String()
	}
	b, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
