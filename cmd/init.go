package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize notepad configuration",
	Long: `Initialize notepad configuration interactively or with flags.
This command sets up the configuration file and creates necessary directories.`,
	RunE: runInit,
}

var (
	initDataDir     string
	initExportDir   string
	initInteractive bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initDataDir, "data-dir", "", "Data directory for storing the notes database")
	initCmd.Flags().StringVar(&initExportDir, "export-dir", "", "Directory exported notes are written to")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Run interactive setup")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Configuration already exists at: %s\n", configPath)
		if !confirm(reader, "Do you want to overwrite it? (y/N): ") {
			fmt.Println("Configuration initialization cancelled.")
			return nil
		}
	}

	if initInteractive || (initDataDir == "" && initExportDir == "") {
		fmt.Println("=== NotePad Configuration Setup ===")
		fmt.Println()

		defaultDataDir := config.GetDefaultDataDirectory()
		initDataDir = prompt(reader, "Data directory", defaultDataDir)

		defaultExportDir := config.GetDefaultExportDirectory(initDataDir)
		initExportDir = prompt(reader, "Export directory", defaultExportDir)
	}

	cfg, err := config.InitializeConfig(config.ExpandPath(initDataDir), config.ExpandPath(initExportDir))
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	fmt.Println("\n=== Configuration Summary ===")
	fmt.Printf("Config file:        %s\n", configPath)
	fmt.Printf("Data directory:     %s\n", cfg.DataDirectory)
	fmt.Printf("Database path:      %s\n", cfg.GetDatabasePath())
	fmt.Printf("Export directory:   %s\n", cfg.GetExportDirectory())

	fmt.Println("\nConfiguration initialized successfully!")
	fmt.Println("You can now use 'notepad add' to write your first note.")
	return nil
}

// prompt reads one line, falling back to def on an empty answer.
func prompt(reader *bufio.Reader, label, def string) string {
	fmt.Printf("%s [%s]: ", label, def)
	input, _ := reader.ReadString('\n')
	if input = strings.TrimSpace(input); input != "" {
		return input
	}
	return def
}

func confirm(reader *bufio.Reader, question string) bool {
	fmt.Print(question)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
