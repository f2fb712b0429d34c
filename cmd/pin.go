package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Pin or unpin a note",
	Long:  `Toggle whether a note is pinned. Pinned notes are listed before all others.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPin,
}

func init() {
	rootCmd.AddCommand(pinCmd)
}

func runPin(_ *cobra.Command, args []string) error {
	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}

	pinned, err := noteRepo.TogglePin(id)
	if err != nil {
		return fmt.Errorf("failed to toggle pin: %w", err)
	}

	if pinned {
		fmt.Printf("📌 Note %d pinned\n", id)
	} else {
		fmt.Printf("Note %d unpinned\n", id)
	}
	return nil
}
