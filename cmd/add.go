package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/format"
	"github.com/streed/notepad/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new note",
	Long: `Add a new note with a title, a body, or both.

The body can be provided in several ways:
1. Via --body flag: notepad add -t "Groceries" -b "milk, eggs"
2. Via stdin: echo "milk, eggs" | notepad add -t "Groceries"
3. From the clipboard: notepad add --paste

When only a body is given, the title is taken from its first line.`,
	RunE: runAdd,
}

var (
	addTitle    string
	addBody     string
	addCategory string
	addPin      bool
	addPaste    bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addBody, "body", "b", "", "Note body")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category to file the note under")
	addCmd.Flags().BoolVarP(&addPin, "pin", "p", false, "Pin the note to the top of the list")
	addCmd.Flags().BoolVar(&addPaste, "paste", false, "Use the clipboard contents as the body")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addPaste {
		text, err := clipboard.ReadAll()
		if err != nil {
			return fmt.Errorf("%w: %w", interrors.ErrClipboardFail, err)
		}
		addBody = text
	} else if addBody == "" && isPiped() {
		scanner := bufio.NewScanner(os.Stdin)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		addBody = strings.Join(lines, "\n")
	}

	if strings.TrimSpace(addTitle) == "" {
		addTitle = models.TitleFromBody(addBody)
	}

	id, err := noteRepo.Insert(models.NoteFields{
		Title:    &addTitle,
		Body:     &addBody,
		Category: &addCategory,
		Pinned:   &addPin,
	})
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	note, err := noteRepo.GetByID(id)
	if err != nil {
		return err
	}

	fmt.Printf("Note created successfully!\n")
	fmt.Printf("ID: %d\n", note.ID)
	fmt.Printf("Title: %s\n", format.Formatters[format.ColumnTitle](*note).Text)
	if note.HasCategory() {
		fmt.Printf("Category: %s\n", note.Category)
	}
	if note.Pinned {
		fmt.Printf("Pinned: %s\n", format.PinnedIcon)
	}
	fmt.Printf("Created: %s\n", note.Created().Format("2006-01-02 15:04:05"))

	return nil
}

// isPiped reports whether stdin is a pipe or file rather than a terminal.
func isPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
