// Package export writes notes out as plain text files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/streed/notepad/internal/constants"
	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
)

const (
	timeLayout     = "2006-01-02 15:04:05"
	fileNameLayout = "20060102_150405"
)

// Render returns the text file contents for a note.
func Render(n models.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", n.Title)
	if n.HasCategory() {
		fmt.Fprintf(&b, "Category: %s\n", n.Category)
	}
	fmt.Fprintf(&b, "Created: %s\n", n.Created().Local().Format(timeLayout))
	fmt.Fprintf(&b, "Modified: %s\n", n.Modified().Local().Format(timeLayout))
	b.WriteString("\nContent:\n")
	b.WriteString(n.Body)
	return b.String()
}

// FileName is the base name for an export made at t.
func FileName(t time.Time) string {
	return "Note_" + t.Format(fileNameLayout) + ".txt"
}

// Exporter writes notes into Dir.
type Exporter struct {
	Dir string
	now func() time.Time
}

func New(dir string) *Exporter {
	return &Exporter{Dir: dir, now: time.Now}
}

// Export writes the note and returns the file path. Exports in the same
// second get a numeric suffix instead of overwriting each other.
func (e *Exporter) Export(n models.Note) (string, error) {
	if err := os.MkdirAll(e.Dir, constants.DirMode); err != nil {
		return "", fmt.Errorf("%w: failed to create export directory: %w", interrors.ErrExportFailed, err)
	}

	path, err := e.freePath(FileName(e.now()))
	if err != nil {
		return "", err
	}

	if err := atomic.WriteFile(path, strings.NewReader(Render(n))); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: failed to write %s: %w", interrors.ErrExportFailed, path, err)
	}

	// atomic.WriteFile does not set permissions on new files
	if err := os.Chmod(path, constants.ExportFileMode); err != nil {
		return "", fmt.Errorf("%w: failed to set file permissions: %w", interrors.ErrExportFailed, err)
	}

	logger.Debug("Exported note %d to %s", n.ID, path)
	return path, nil
}

// freePath claims the first unused name with an empty placeholder file, so
// concurrent exports in the same second never pick the same path.
func (e *Exporter) freePath(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	path := filepath.Join(e.Dir, name)
	for i := 2; ; i++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.ExportFileMode)
		if err == nil {
			f.Close()
			return path, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("%w: %w", interrors.ErrExportFailed, err)
		}
		path = filepath.Join(e.Dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}
