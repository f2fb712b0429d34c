package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/streed/notepad/internal/constants"
	interrors "github.com/streed/notepad/internal/errors"
)

const appName = "notepad"

// Environment overrides, applied after the config file.
const (
	EnvDataDir   = "NOTEPAD_DATA_DIR"
	EnvDBPath    = "NOTEPAD_DB_PATH"
	EnvExportDir = "NOTEPAD_EXPORT_DIR"
	EnvDebug     = "NOTEPAD_DEBUG"
)

type Config struct {
	DataDirectory   string `json:"data_directory,omitempty"`
	DatabasePath    string `json:"database_path,omitempty"`
	ExportDirectory string `json:"export_directory,omitempty"`
	Debug           bool   `json:"debug"`
	ServeHost       string `json:"serve_host,omitempty"`
	ServePort       int    `json:"serve_port,omitempty"`
	Editor          string `json:"editor,omitempty"`
}

// Keys accepted by Set, in display order.
var Keys = []string{"data-dir", "export-dir", "debug", "serve-host", "serve-port", "editor"}

// getDefaultConfig returns a fresh copy of the default configuration
func getDefaultConfig() Config {
	return Config{
		DataDirectory: "", // Will be set to ~/.local/share/notepad
		DatabasePath:  "", // Will be set to DataDirectory/notes.db
		Debug:         false,
		ServeHost:     "localhost",
		ServePort:     8080,
	}
}

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, appName, "config.json"), nil
}

func GetDefaultDataDirectory() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+appName)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, appName)
}

// GetDefaultExportDirectory is ~/Documents/NotePad, or an exports folder in
// the data directory when there is no home directory.
func GetDefaultExportDirectory(dataDir string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return filepath.Join(dataDir, "exports")
	}
	return filepath.Join(homeDir, "Documents", "NotePad")
}

func Load() (*Config, error) {
	// A missing .env is not an error
	_ = godotenv.Load()

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := getDefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDirectory = v
		c.DatabasePath = ""
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		c.ExportDirectory = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	return nil
}

func (c *Config) applyDefaults() {
	defaults := getDefaultConfig()

	if c.DataDirectory == "" {
		c.DataDirectory = GetDefaultDataDirectory()
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDirectory, "notes.db")
	}
	if c.ExportDirectory == "" {
		c.ExportDirectory = GetDefaultExportDirectory(c.DataDirectory)
	}
	if c.ServeHost == "" {
		c.ServeHost = defaults.ServeHost
	}
	if c.ServePort == 0 {
		c.ServePort = defaults.ServePort
	}
}

func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, constants.DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create data directory if it doesn't exist
	if cfg.DataDirectory != "" {
		if err := os.MkdirAll(cfg.DataDirectory, constants.DirMode); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write config file with secure permissions
	if err := os.WriteFile(configPath, data, constants.ConfigFileMode); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func InitializeConfig(dataDir, exportDir string) (*Config, error) {
	cfg := getDefaultConfig()

	if dataDir != "" {
		cfg.DataDirectory = dataDir
	} else {
		cfg.DataDirectory = GetDefaultDataDirectory()
	}
	cfg.DatabasePath = filepath.Join(cfg.DataDirectory, "notes.db")

	if exportDir != "" {
		cfg.ExportDirectory = exportDir
	} else {
		cfg.ExportDirectory = GetDefaultExportDirectory(cfg.DataDirectory)
	}

	if err := Save(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) GetDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDirectory, "notes.db")
}

func (c *Config) GetExportDirectory() string {
	if c.ExportDirectory != "" {
		return c.ExportDirectory
	}
	return GetDefaultExportDirectory(c.DataDirectory)
}

// ServeAddr is the listen address for the HTTP API.
func (c *Config) ServeAddr() string {
	return fmt.Sprintf("%s:%d", c.ServeHost, c.ServePort)
}

// Set updates one of Keys from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data-dir":
		c.DataDirectory = ExpandPath(value)
		c.DatabasePath = "" // Regenerated from the new directory
	case "export-dir":
		c.ExportDirectory = ExpandPath(value)
	case "debug":
		debug, err := ParseBool(value)
		if err != nil {
			return err
		}
		c.Debug = debug
	case "serve-host":
		c.ServeHost = value
	case "serve-port":
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%w: %s", interrors.ErrInvalidPort, value)
		}
		c.ServePort = port
	case "editor":
		c.Editor = value
	default:
		return fmt.Errorf("%w: %s", interrors.ErrUnknownConfigKey, key)
	}
	return nil
}

// ParseBool accepts true/false, yes/no and 1/0.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case constants.BoolTrue, constants.BoolYes, constants.BoolOne:
		return true, nil
	case constants.BoolFalse, constants.BoolNo, constants.BoolZero:
		return false, nil
	}
	return false, fmt.Errorf("%w: %s", interrors.ErrInvalidBoolean, value)
}

// ExpandPath resolves a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
