package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/preferences"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage display preferences",
	Long:  `View and change the display preferences stored alongside your notes.`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set [name] [value]",
	Short: "Set a preference",
	Long: `Set a display preference.

Available preferences:
  - theme: dark or light
  - text-size: small, normal or large`,
	Args: cobra.ExactArgs(2),
	RunE: runPrefsSet,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefsShow(_ *cobra.Command, _ []string) error {
	printPreferences(prefsRepo.LoadUI())
	return nil
}

func runPrefsSet(_ *cobra.Command, args []string) error {
	ui, err := prefsRepo.SetByName(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	fmt.Printf("Preference updated: %s = %s\n", args[0], args[1])
	printPreferences(ui)
	return nil
}

func printPreferences(ui preferences.UI) {
	fmt.Println("=== Preferences ===")
	fmt.Printf("theme:      %s\n", ui.Theme())
	fmt.Printf("text-size:  %s (%dpt)\n", ui.TextSize, ui.TextSize.Points())
}
