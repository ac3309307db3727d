// Package config handles configuration loading and parsing for ccnotify.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/foxytanuki/ccnotify/internal/constants"
	"github.com/foxytanuki/ccnotify/internal/logger"
)

//go:embed config.toml
var defaultConfig []byte

// Config holds the tool's own settings, parsed from config.toml.
type Config struct {
	Ntfy    NtfyConfig    `toml:"ntfy"`
	Notify  NotifyConfig  `toml:"notify"`
	MacOS   MacOSConfig   `toml:"macos"`
	Scripts ScriptsConfig `toml:"scripts"`
	Backup  BackupConfig  `toml:"backup"`
}

// NtfyConfig configures the ntfy channel.
type NtfyConfig struct {
	// Server is the base URL generated ntfy scripts publish to.
	Server string `toml:"server"`
}

// NotifyConfig holds settings shared by every generated script.
type NotifyConfig struct {
	// TimeoutSec is the client-side curl timeout baked into scripts.
	TimeoutSec int `toml:"timeout_sec"`
}

// MacOSConfig configures the desktop notification channel.
type MacOSConfig struct {
	// DefaultTitle is used when no title argument is given.
	DefaultTitle string `toml:"default_title"`
}

// ScriptsConfig controls where generated scripts are written.
type ScriptsConfig struct {
	// Dir overrides the per-user data directory when non-empty.
	Dir string `toml:"dir"`
}

// BackupConfig controls settings.json backup retention.
type BackupConfig struct {
	// KeepAll disables pruning of older timestamped backups.
	KeepAll bool `toml:"keep_all"`
}

var (
	globalConfig      *Config
	configInitialized bool
	initErr           error
)

// GetConfigDir returns the config directory path.
// Uses CCNOTIFY_CONFIG env var if set, otherwise ~/.config/ccnotify.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(constants.EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, constants.XDGConfigSubdir, constants.AppName), nil
}

// GetDataDir returns the per-user data directory path.
// Uses CCNOTIFY_DATA env var if set, otherwise ~/.local/share/ccnotify.
func GetDataDir() (string, error) {
	if dir := os.Getenv(constants.EnvDataDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", constants.AppName), nil
}

// EnsureConfigFiles creates the config directory and writes the default
// config file if it doesn't exist.
func EnsureConfigFiles(configDir string) error {
	if err := os.MkdirAll(configDir, constants.DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, constants.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, defaultConfig, constants.FileMode); err != nil {
			return fmt.Errorf("failed to write %s: %w", constants.ConfigFileName, err)
		}
	}

	return nil
}

// LoadConfig parses TOML data and normalizes it against defaults.
func LoadConfig(data []byte) (*Config, error) {
	cfg := loadEmbeddedDefaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.Ntfy.Server == "" {
		cfg.Ntfy.Server = "https://ntfy.sh"
	}
	cfg.Ntfy.Server = strings.TrimRight(cfg.Ntfy.Server, "/")
	if cfg.Notify.TimeoutSec <= 0 {
		cfg.Notify.TimeoutSec = 10
	}
	if cfg.MacOS.DefaultTitle == "" {
		cfg.MacOS.DefaultTitle = "Claude Code"
	}

	return cfg, nil
}

// loadEmbeddedDefaults loads the embedded default config file.
func loadEmbeddedDefaults() *Config {
	cfg := &Config{}
	_ = toml.Unmarshal(defaultConfig, cfg)
	return cfg
}

// Init loads configuration from files, creating defaults if necessary.
// If loading fails, it falls back to embedded defaults.
func Init() error {
	if configInitialized {
		return initErr
	}
	configInitialized = true

	configDir, err := GetConfigDir()
	if err != nil {
		logger.Debug("failed to get config dir, using embedded defaults", "error", err)
		globalConfig, _ = LoadConfig(defaultConfig)
		initErr = err
		return err
	}

	if err := EnsureConfigFiles(configDir); err != nil {
		logger.Debug("failed to ensure config files, using embedded defaults", "error", err)
		globalConfig, _ = LoadConfig(defaultConfig)
		initErr = err
		return err
	}

	configPath := filepath.Join(configDir, constants.ConfigFileName)
	configData, err := os.ReadFile(configPath)
	if err != nil {
		logger.Debug("failed to read config file, using embedded defaults", "path", configPath, "error", err)
		globalConfig, _ = LoadConfig(defaultConfig)
		initErr = fmt.Errorf("failed to read %s: %w", constants.ConfigFileName, err)
		return initErr
	}

	globalConfig, err = LoadConfig(configData)
	if err != nil {
		logger.Debug("failed to parse config, using embedded defaults", "error", err)
		globalConfig, _ = LoadConfig(defaultConfig)
		initErr = fmt.Errorf("failed to load config: %w", err)
		return initErr
	}

	logger.Debug("config loaded", "path", configPath, "ntfy_server", globalConfig.Ntfy.Server)
	return nil
}

// Get returns the current configuration.
// If Init has not been called, it initializes with defaults.
func Get() *Config {
	if !configInitialized {
		Init()
	}
	return globalConfig
}

// InitError returns the error from the last Init, if any.
func InitError() error {
	return initErr
}

// Reset resets the configuration state. Used for testing.
func Reset() {
	configInitialized = false
	globalConfig = nil
	initErr = nil
}

// GetDefaultConfig returns the embedded default configuration.
func GetDefaultConfig() []byte {
	return defaultConfig
}
