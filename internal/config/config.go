// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/plainlaw/internal/gemini"
	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/storage"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvAPIKey   = "PLAINLAW_API_KEY"
	EnvEndpoint = "PLAINLAW_ENDPOINT"
	EnvStore    = "PLAINLAW_STORE"
	EnvLogLevel = "PLAINLAW_LOG_LEVEL"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete plainlaw configuration.
type Config struct {
	Version string        `toml:"version" json:"version"`
	API     APIConfig     `toml:"api" json:"api"`
	Storage StorageConfig `toml:"storage" json:"storage"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// APIConfig holds the generation endpoint settings.
type APIConfig struct {
	// Endpoint is the full generateContent URL.
	Endpoint string `toml:"endpoint" json:"endpoint"`
	// Key is the credential. Prefer PLAINLAW_API_KEY over storing it here.
	Key string `toml:"key" json:"key"`
}

// StorageConfig selects where theme and history are kept.
type StorageConfig struct {
	// Backend is sqlite, file or memory.
	Backend string `toml:"backend" json:"backend"`
	// Path overrides the backend's default location.
	Path string `toml:"path,omitempty" json:"path,omitempty"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// ThemeDefault applies until the user toggles the theme once.
	ThemeDefault string `toml:"theme_default" json:"theme_default"`
	// Markdown renders bot replies as markdown.
	Markdown bool `toml:"markdown" json:"markdown"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	// File is where the TUI logs. Empty means ~/.plainlaw/plainlaw.log.
	File string `toml:"file,omitempty" json:"file,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			Endpoint: gemini.DefaultEndpoint,
		},
		Storage: StorageConfig{
			Backend: storage.BackendSQLite,
		},
		UI: UIConfig{
			ThemeDefault: model.DefaultTheme.String(),
			Markdown:     true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the plainlaw configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".plainlaw"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogFile returns ~/.plainlaw/plainlaw.log.
func DefaultLogFile() string {
	dir, err := ConfigDir()
	if err != nil {
		return "plainlaw.log"
	}
	return filepath.Join(dir, "plainlaw.log")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.plainlaw/config.toml if it exists, then applies .env files
// and environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the TOML file at path, tolerating its absence, then
// applies .env files, environment overrides and validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if err := LoadDotEnv(dotEnvPaths(path)...); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path over cfg. Keys absent from the file keep their
// current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults restores defaults for string fields explicitly set empty.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.API.Endpoint == "" {
		cfg.API.Endpoint = defaults.API.Endpoint
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.UI.ThemeDefault == "" {
		cfg.UI.ThemeDefault = defaults.UI.ThemeDefault
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

func dotEnvPaths(configPath string) []string {
	return []string{".env", filepath.Join(filepath.Dir(configPath), ".env")}
}

// LoadDotEnv exports the variables from each existing file in paths into
// the process environment. Variables already set are left alone, so the
// first file wins over later ones and the real environment wins over all.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read .env file %s: %w", p, err)
		}

		envMap, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse .env file %s: %w", p, err)
		}
		for key, value := range envMap {
			if _, set := os.LookupEnv(key); set {
				continue
			}
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to export %s: %w", key, err)
			}
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# plainlaw configuration file")
	fmt.Fprintln(file, "#")
	fmt.Fprintf(file, "# The API key can also come from %s or a .env file.\n", EnvAPIKey)
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration. A missing API key is not an error:
// requests fail with a configuration message instead.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.Endpoint); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "api.endpoint",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.API.Endpoint),
		})
	}

	switch strings.ToLower(c.Storage.Backend) {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: sqlite, file, memory", c.Storage.Backend),
		})
	}

	if _, err := model.ParseTheme(c.UI.ThemeDefault); err != nil {
		errs = append(errs, ValidationError{
			Field:   "ui.theme_default",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: light, dark", c.UI.ThemeDefault),
		})
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PLAINLAW_* variables:
//   - PLAINLAW_API_KEY: overrides api.key
//   - PLAINLAW_ENDPOINT: overrides api.endpoint
//   - PLAINLAW_STORE: overrides storage.backend
//   - PLAINLAW_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.API.Key = key
	}
	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		c.API.Endpoint = endpoint
	}
	if store := os.Getenv(EnvStore); store != "" {
		c.Storage.Backend = store
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
}

// Theme returns the parsed default theme.
func (c *Config) Theme() model.Theme {
	t, _ := model.ParseTheme(c.UI.ThemeDefault)
	return t
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as JSON with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.API.Key != "" {
		safe.API.Key = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
