package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/constants"
	"github.com/streed/notepad/internal/format"
	"github.com/streed/notepad/internal/listing"
	"github.com/streed/notepad/internal/query"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List notes, pinned first and then by most recent modification.

--search keeps notes whose title, body or category contains the text,
ignoring case. --category keeps notes filed under exactly that category
("all" means every category). Both together keep notes matching both.`,
	Aliases: []string{"ls"},
	RunE:    runList,
}

var (
	listSearch   string
	listCategory string
	listShort    bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Only notes containing this text")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", constants.AllCategoriesLabel, "Only notes in this category")
	listCmd.Flags().BoolVarP(&listShort, "short", "s", false, "Show only ID and title")
}

func runList(cmd *cobra.Command, args []string) error {
	screen := listing.NewScreen(noteRepo, nil)
	filter := query.NewFilter(listSearch, query.ParseCategory(listCategory))
	view := screen.Dispatch(listing.Applied{Filter: filter})
	if view.Err != nil {
		return fmt.Errorf("failed to list notes: %w", view.Err)
	}

	if view.Empty() {
		if view.Filter.Active() {
			fmt.Println("No matching notes.")
		} else {
			fmt.Println("No notes yet. Add one with 'notepad add'.")
		}
		return nil
	}

	if view.ShowCount() {
		fmt.Printf("%s\n\n", view.CountLabel())
	}

	now := time.Now()
	for _, note := range view.Notes {
		if listShort {
			fmt.Printf("[%d] %s\n", note.ID, format.Line(format.Row(note, format.ColumnPinned, format.ColumnTitle)))
			continue
		}
		fmt.Printf("[%d] %s\n", note.ID, format.Line(format.Row(note, format.ColumnPinned, format.ColumnTitle, format.ColumnCategory)))
		fmt.Printf("Modified: %s\n", format.Relative(note.Modified(), now))
		if preview := format.Preview(note.Body, constants.ShortPreviewLength); preview != "" {
			fmt.Printf("Preview: %s\n", preview)
		}
		fmt.Println(strings.Repeat("-", 60))
	}

	return nil
}
