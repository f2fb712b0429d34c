package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/config"
	"github.com/streed/notepad/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [note IDs...]",
	Short: "Export notes to text files",
	Long: `Write each note to its own text file named Note_YYYYMMDD_HHMMSS.txt.

Files go to the configured export directory unless --dir is given.
An existing file is never overwritten; a numeric suffix is added instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

var exportDir string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Directory to export to")
}

func runExport(_ *cobra.Command, args []string) error {
	dir := appConfig.GetExportDirectory()
	if exportDir != "" {
		dir = config.ExpandPath(exportDir)
	}
	exporter := export.New(dir)

	for _, arg := range args {
		id, err := parseNoteID(arg)
		if err != nil {
			return err
		}
		note, err := noteRepo.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		path, err := exporter.Export(*note)
		if err != nil {
			return err
		}
		fmt.Printf("Exported note %d to %s\n", id, path)
	}
	return nil
}
