package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/format"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Short:   "List categories in use",
	Long:    `List the distinct categories notes are filed under, with the number of notes in each.`,
	Aliases: []string{"cats"},
	RunE:    runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	counts, err := noteRepo.CategoryCounts()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No categories.")
		return nil
	}

	for _, c := range counts {
		fmt.Printf("%s %s (%d)\n", format.CategoryIcon, c.Name, c.Count)
	}
	return nil
}
