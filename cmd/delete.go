package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/format"
	"github.com/streed/notepad/internal/logger"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [note IDs...]",
	Short: "Delete one or more notes",
	Long: `Delete notes by their IDs.

By default, you will be prompted for confirmation before deletion.
Use --force to skip the confirmation prompt.`,
	Args:    cobra.MinimumNArgs(1),
	Aliases: []string{"rm", "remove"},
	RunE:    runDelete,
}

var forceDelete bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(_ *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseNoteID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	titles := make(map[int64]string)
	var found []int64
	for _, id := range ids {
		note, err := noteRepo.GetByID(id)
		if err != nil {
			logger.Error("Note with ID %d not found: %v", id, err)
			fmt.Printf("Warning: Note with ID %d not found\n", id)
			continue
		}
		titles[id] = format.Formatters[format.ColumnTitle](*note).Text
		found = append(found, id)
	}

	if len(found) == 0 {
		fmt.Println("No valid notes to delete.")
		return nil
	}

	fmt.Println("The following notes will be deleted:")
	fmt.Println(strings.Repeat("-", 60))
	for _, id := range found {
		fmt.Printf("  [%d] %s\n", id, titles[id])
	}
	fmt.Println(strings.Repeat("-", 60))

	if !forceDelete {
		question := "Are you sure you want to delete this note? (y/N): "
		if len(found) > 1 {
			question = fmt.Sprintf("Are you sure you want to delete %d notes? (y/N): ", len(found))
		}
		if !confirm(bufio.NewReader(os.Stdin), question) {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	successCount, failCount := 0, 0
	for _, id := range found {
		if err := noteRepo.Delete(id); err != nil {
			logger.Error("Failed to delete note %d: %v", id, err)
			fmt.Printf("✗ Failed to delete note %d: %v\n", id, err)
			failCount++
			continue
		}
		fmt.Printf("✓ Deleted note %d: %s\n", id, titles[id])
		successCount++
	}

	fmt.Println(strings.Repeat("=", 60))
	if failCount == 0 {
		fmt.Printf("Successfully deleted %d note(s).\n", successCount)
	} else {
		fmt.Printf("Deleted %d note(s), failed to delete %d note(s).\n", successCount, failCount)
	}

	return nil
}
