package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage notepad configuration",
	Long:  `View and manage notepad configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current notepad configuration settings, after environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value.

Available keys:
  - data-dir: Data directory for storing the notes database
  - export-dir: Directory exported notes are written to
  - debug: Enable/disable debug logging (true/false)
  - serve-host: Host the HTTP API binds to
  - serve-port: Port the HTTP API binds to
  - editor: Editor used by 'notepad edit' (e.g., "vim", "code --wait")`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	fmt.Println("=== NotePad Configuration ===")
	fmt.Printf("Config file:     %s\n", configPath)
	fmt.Printf("data-dir:        %s\n", cfg.DataDirectory)
	fmt.Printf("Database path:   %s\n", cfg.GetDatabasePath())
	fmt.Printf("export-dir:      %s\n", cfg.GetExportDirectory())
	fmt.Printf("debug:           %v\n", cfg.Debug)
	fmt.Printf("serve-host:      %s\n", cfg.ServeHost)
	fmt.Printf("serve-port:      %d\n", cfg.ServePort)
	if cfg.Editor != "" {
		fmt.Printf("editor:          %s\n", cfg.Editor)
	} else {
		fmt.Printf("editor:          Auto-detect\n")
	}

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	fmt.Println(configPath)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("%w (keys: %s)", err, strings.Join(config.Keys, ", "))
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("Configuration updated: %s = %s\n", key, value)
	return nil
}
