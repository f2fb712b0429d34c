package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/format"
)

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a note by ID",
	Long:  `Display the full content of a note by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(_ *cobra.Command, args []string) error {
	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}

	note, err := noteRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("ID: %d\n", note.ID)
	fmt.Printf("Title: %s\n", format.Formatters[format.ColumnTitle](*note).Text)
	if note.HasCategory() {
		fmt.Printf("Category: %s\n", note.Category)
	}
	fmt.Printf("Pinned: %v\n", note.Pinned)
	fmt.Printf("Created: %s\n", note.Created().Format("2006-01-02 15:04:05"))
	fmt.Printf("Modified: %s\n", note.Modified().Format("2006-01-02 15:04:05"))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	fmt.Println(note.Body)
	fmt.Println()

	return nil
}
