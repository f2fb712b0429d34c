package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	interrors "github.com/streed/notepad/internal/errors"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tempDir, "share"))
	for _, key := range []string{EnvDataDir, EnvDBPath, EnvExportDir, EnvDebug} {
		t.Setenv(key, "")
	}
	return tempDir
}

func TestGetDefaultDataDirectory(t *testing.T) {
	tests := []struct {
		name     string
		xdgHome  string
		expected string
	}{
		{
			name:     "With XDG_DATA_HOME set",
			xdgHome:  "/custom/data",
			expected: "/custom/data/notepad",
		},
		{
			name:    "Without XDG_DATA_HOME",
			xdgHome: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_DATA_HOME", tt.xdgHome)
			result := GetDefaultDataDirectory()

			expected := tt.expected
			if tt.xdgHome == "" {
				homeDir, _ := os.UserHomeDir()
				expected = filepath.Join(homeDir, ".local", "share", "notepad")
			}
			if result != expected {
				t.Errorf("Expected %s, got %s", expected, result)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	tempDir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	dataDir := filepath.Join(tempDir, "share", "notepad")
	if cfg.DataDirectory != dataDir {
		t.Errorf("Expected DataDirectory %s, got %s", dataDir, cfg.DataDirectory)
	}
	if cfg.GetDatabasePath() != filepath.Join(dataDir, "notes.db") {
		t.Errorf("Unexpected database path %s", cfg.GetDatabasePath())
	}
	if cfg.ExportDirectory == "" {
		t.Error("ExportDirectory should have a default")
	}
	if cfg.ServeAddr() != "localhost:8080" {
		t.Errorf("Expected localhost:8080, got %s", cfg.ServeAddr())
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	tempDir := isolate(t)
	configFile := filepath.Join(tempDir, "notepad", "config.json")

	dataDir := filepath.Join(tempDir, "test-data")
	testConfig := &Config{
		DataDirectory:   dataDir,
		DatabasePath:    filepath.Join(dataDir, "notes.db"),
		ExportDirectory: filepath.Join(tempDir, "exports"),
		Debug:           true,
		ServeHost:       "0.0.0.0",
		ServePort:       9090,
	}

	if err := Save(testConfig); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	info, err := os.Stat(configFile)
	if os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected config mode 0600, got %o", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if *loaded != *testConfig {
		t.Errorf("Config mismatch: expected %+v, got %+v", testConfig, loaded)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	tempDir := isolate(t)

	configDir := filepath.Join(tempDir, "notepad")
	os.MkdirAll(configDir, 0755)

	partialConfig := map[string]interface{}{
		"serve_port": 7000,
	}
	data, _ := json.MarshalIndent(partialConfig, "", "  ")
	os.WriteFile(filepath.Join(configDir, "config.json"), data, 0600)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.ServePort != 7000 {
		t.Errorf("Expected custom ServePort, got %d", cfg.ServePort)
	}
	if cfg.ServeHost != "localhost" {
		t.Errorf("Expected default ServeHost, got %q", cfg.ServeHost)
	}
}

func TestLoadMalformed(t *testing.T) {
	tempDir := isolate(t)

	configDir := filepath.Join(tempDir, "notepad")
	os.MkdirAll(configDir, 0755)
	os.WriteFile(filepath.Join(configDir, "config.json"), []byte("{not json"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected an error for a malformed config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	tempDir := isolate(t)

	if _, err := InitializeConfig(filepath.Join(tempDir, "from-file"), ""); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	envData := filepath.Join(tempDir, "from-env")
	t.Setenv(EnvDataDir, envData)
	t.Setenv(EnvExportDir, filepath.Join(tempDir, "out"))
	t.Setenv(EnvDebug, "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DataDirectory != envData {
		t.Errorf("Expected env data dir, got %s", cfg.DataDirectory)
	}
	if cfg.GetDatabasePath() != filepath.Join(envData, "notes.db") {
		t.Errorf("Database path should follow the env data dir, got %s", cfg.GetDatabasePath())
	}
	if cfg.GetExportDirectory() != filepath.Join(tempDir, "out") {
		t.Errorf("Expected env export dir, got %s", cfg.GetExportDirectory())
	}
	if !cfg.Debug {
		t.Error("Expected debug from env")
	}

	t.Setenv(EnvDBPath, filepath.Join(tempDir, "custom.db"))
	cfg, _ = Load()
	if cfg.GetDatabasePath() != filepath.Join(tempDir, "custom.db") {
		t.Errorf("Expected explicit db path, got %s", cfg.GetDatabasePath())
	}

	t.Setenv(EnvDebug, "maybe")
	if _, err := Load(); !errors.Is(err, interrors.ErrInvalidBoolean) {
		t.Errorf("Expected ErrInvalidBoolean, got %v", err)
	}
}

func TestInitializeConfig(t *testing.T) {
	tempDir := isolate(t)

	dataDir := filepath.Join(tempDir, "data")
	exportDir := filepath.Join(tempDir, "exports")

	cfg, err := InitializeConfig(dataDir, exportDir)
	if err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	if cfg.DataDirectory != dataDir {
		t.Errorf("Expected DataDirectory %s, got %s", dataDir, cfg.DataDirectory)
	}
	expectedDBPath := filepath.Join(dataDir, "notes.db")
	if cfg.DatabasePath != expectedDBPath {
		t.Errorf("Expected DatabasePath %s, got %s", expectedDBPath, cfg.DatabasePath)
	}
	if cfg.ExportDirectory != exportDir {
		t.Errorf("Expected ExportDirectory %s, got %s", exportDir, cfg.ExportDirectory)
	}

	configFile := filepath.Join(tempDir, "notepad", "config.json")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Fatal("Config file was not created during initialization")
	}
	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("Data directory was not created: %v", err)
	}
}

func TestGetDatabasePath(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		expectedPath string
	}{
		{
			name: "With DatabasePath set",
			config: Config{
				DatabasePath:  "/custom/path/notes.db",
				DataDirectory: "/data",
			},
			expectedPath: "/custom/path/notes.db",
		},
		{
			name: "Without DatabasePath set",
			config: Config{
				DatabasePath:  "",
				DataDirectory: "/data",
			},
			expectedPath: "/data/notes.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetDatabasePath()
			if result != tt.expectedPath {
				t.Errorf("Expected %s, got %s", tt.expectedPath, result)
			}
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr error
		check   func(*Config) bool
	}{
		{"data-dir", "/tmp/np", nil, func(c *Config) bool { return c.DataDirectory == "/tmp/np" && c.DatabasePath == "" }},
		{"export-dir", "/tmp/out", nil, func(c *Config) bool { return c.ExportDirectory == "/tmp/out" }},
		{"debug", "1", nil, func(c *Config) bool { return c.Debug }},
		{"debug", "sometimes", interrors.ErrInvalidBoolean, nil},
		{"serve-host", "0.0.0.0", nil, func(c *Config) bool { return c.ServeHost == "0.0.0.0" }},
		{"serve-port", "9000", nil, func(c *Config) bool { return c.ServePort == 9000 }},
		{"serve-port", "http", interrors.ErrInvalidPort, nil},
		{"serve-port", "70000", interrors.ErrInvalidPort, nil},
		{"editor", "code --wait", nil, func(c *Config) bool { return c.Editor == "code --wait" }},
		{"ollama-endpoint", "x", interrors.ErrUnknownConfigKey, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{DatabasePath: "/old/notes.db"}
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%q, %q) produced %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/notes"); got != filepath.Join(homeDir, "notes") {
		t.Errorf("ExpandPath(~/notes) = %s", got)
	}
	if got := ExpandPath("/abs"); got != "/abs" {
		t.Errorf("ExpandPath(/abs) = %s", got)
	}
}
