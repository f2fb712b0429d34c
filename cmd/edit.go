package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
)

var editCmd = &cobra.Command{
	Use:   "edit <note-id>",
	Short: "Edit an existing note",
	Long: `Edit a note in your default editor.

The note will open in your $EDITOR (or an editor found on your PATH).
After editing, the note is saved only if something changed.

The editor will show the note in this format:
  Title: [note title]
  Category: [category]
  ---
  [note body]

Everything after the "---" separator becomes the body. If the header is
removed, the whole file is taken as the new body.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editor string

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editor, "editor", "e", "", "Specify editor to use (overrides $EDITOR)")
}

func runEdit(_ *cobra.Command, args []string) error {
	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}

	note, err := noteRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get note %d: %w", id, err)
	}

	tempFile, err := os.CreateTemp("", fmt.Sprintf("notepad-%d-*.txt", note.ID))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString(renderEditable(*note)); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	tempFile.Close()

	if err := openInEditor(tempFile.Name()); err != nil {
		return err
	}

	edited, err := os.ReadFile(tempFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read edited file: %w", err)
	}

	fields := parseEditable(string(edited), *note)
	if fields == (models.NoteFields{}) {
		fmt.Println("No changes detected.")
		return nil
	}

	if err := noteRepo.Update(id, fields); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	fmt.Println("✓ Note updated successfully")
	if fields.Title != nil {
		fmt.Printf("  Title changed from: %s\n", note.Title)
		fmt.Printf("                  to: %s\n", *fields.Title)
	}
	if fields.Category != nil {
		fmt.Printf("  Category: %q -> %q\n", note.Category, *fields.Category)
	}
	if fields.Body != nil {
		delta := len(*fields.Body) - len(note.Body)
		switch {
		case delta > 0:
			fmt.Printf("  Body increased by %d characters\n", delta)
		case delta < 0:
			fmt.Printf("  Body decreased by %d characters\n", -delta)
		default:
			fmt.Println("  Body modified (same length)")
		}
	}

	return nil
}

func renderEditable(note models.Note) string {
	return fmt.Sprintf("Title: %s\nCategory: %s\n---\n%s", note.Title, note.Category, note.Body)
}

// parseEditable reads the edited file back and returns only the fields that
// differ from note.
func parseEditable(text string, note models.Note) models.NoteFields {
	lines := strings.Split(text, "\n")

	title, category := note.Title, note.Category
	body := strings.TrimSpace(text)
	for i, line := range lines {
		if line == "---" {
			for _, h := range lines[:i] {
				if v, ok := strings.CutPrefix(h, "Title:"); ok {
					title = strings.TrimSpace(v)
				} else if v, ok := strings.CutPrefix(h, "Category:"); ok {
					category = strings.TrimSpace(v)
				}
			}
			body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			break
		}
	}

	var fields models.NoteFields
	if title != note.Title {
		fields.Title = &title
	}
	if category != note.Category {
		fields.Category = &category
	}
	if body != strings.TrimSpace(note.Body) {
		fields.Body = &body
	}
	return fields
}

// openInEditor opens a file in the user's editor
func openInEditor(filename string) error {
	// In order: --editor, config, $EDITOR, $VISUAL, then a common editor on PATH
	editorCmd := editor
	if editorCmd == "" && appConfig != nil {
		editorCmd = appConfig.Editor
	}
	if editorCmd == "" {
		editorCmd = os.Getenv("EDITOR")
	}
	if editorCmd == "" {
		editorCmd = os.Getenv("VISUAL")
	}
	if editorCmd == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editorCmd = e
				break
			}
		}
	}
	if editorCmd == "" {
		return fmt.Errorf("no editor found. Set $EDITOR, use --editor, or configure with: notepad config set editor <editor>")
	}

	logger.Debug("Opening file in editor: %s %s", editorCmd, filename)

	// Editors may carry arguments, e.g. "code --wait"
	parts := strings.Fields(editorCmd)
	cmd := exec.Command(parts[0], append(parts[1:], filename)...)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editorCmd, err)
	}

	return nil
}
