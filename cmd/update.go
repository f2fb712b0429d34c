package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/models"
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an existing note",
	Long: `Update the title, body or category of an existing note.
Only the flags you pass are changed. Use --category "" to remove the category.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateTitle    string
	updateBody     string
	updateCategory string
)

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title")
	updateCmd.Flags().StringVarP(&updateBody, "body", "b", "", "New body")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "New category")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}

	var fields models.NoteFields
	if cmd.Flags().Changed("title") {
		fields.Title = &updateTitle
	}
	if cmd.Flags().Changed("body") {
		fields.Body = &updateBody
	}
	if cmd.Flags().Changed("category") {
		fields.Category = &updateCategory
	}
	if fields == (models.NoteFields{}) {
		return fmt.Errorf("nothing to update: pass --title, --body or --category")
	}

	if err := noteRepo.Update(id, fields); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	fmt.Printf("Note %d updated successfully.\n", id)
	return nil
}
