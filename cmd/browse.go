package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/constants"
	"github.com/streed/notepad/internal/export"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse notes interactively",
	Long: `Open the interactive note list.

  /            search as you type (enter to finish, esc to leave the box)
  tab          next category, shift+tab previous
  enter        open the selected note
  p            pin or unpin
  y            copy to the clipboard
  e            export to the export directory
  d            delete (confirm with y)
  x            clear the search and category
  q            quit`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	// The screen owns the terminal, so log lines go to a file.
	logPath := filepath.Join(appConfig.DataDirectory, "notepad.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, constants.LogFileMode)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger.SetOutput(logFile)
	defer logger.SetOutput(os.Stderr)

	ui := prefsRepo.LoadUI()
	model := tui.New(noteRepo, tui.Options{
		DarkTheme: ui.DarkTheme,
		Exporter:  export.New(appConfig.GetExportDirectory()),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}
	return nil
}
