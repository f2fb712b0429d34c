package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/format"
)

var copyCmd = &cobra.Command{
	Use:   "copy [id]",
	Short: "Copy a note to the clipboard",
	Long: `Copy a note's title and body to the system clipboard.
Use --uri to copy a reference to the note instead of its text.`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

var copyURI bool

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().BoolVar(&copyURI, "uri", false, "Copy the note URI instead of its text")
}

func runCopy(_ *cobra.Command, args []string) error {
	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}

	note, err := noteRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}

	text := format.ClipText(*note)
	if copyURI {
		text = format.URI(note.ID)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", interrors.ErrClipboardFail, err)
	}

	fmt.Printf("Copied note %d to the clipboard.\n", id)
	return nil
}
