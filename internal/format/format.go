// Package format turns notes into display text. Each list column has a
// formatter keyed by its role.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/streed/notepad/internal/models"
)

const (
	TimestampLayout = "2006-01-02 15:04"
	Untitled        = "(untitled)"
	CategoryIcon    = "📁"
	PinnedIcon      = "📌"
	ellipsis        = "…"
)

type ColumnRole int

const (
	ColumnTitle ColumnRole = iota
	ColumnTimestamp
	ColumnCategory
	ColumnPinned
)

func (r ColumnRole) String() string {
	switch r {
	case ColumnTitle:
		return "title"
	case ColumnTimestamp:
		return "timestamp"
	case ColumnCategory:
		return "category"
	case ColumnPinned:
		return "pinned"
	}
	return fmt.Sprintf("column(%d)", int(r))
}

// Cell is one formatted column. Hidden cells take no space.
type Cell struct {
	Text    string
	Visible bool
}

type Formatter func(models.Note) Cell

// Formatters maps each column role to its formatter.
var Formatters = map[ColumnRole]Formatter{
	ColumnTitle: func(n models.Note) Cell {
		title := strings.TrimSpace(n.Title)
		if title == "" {
			title = Untitled
		}
		return Cell{Text: title, Visible: true}
	},
	ColumnTimestamp: func(n models.Note) Cell {
		return Cell{Text: n.Modified().Local().Format(TimestampLayout), Visible: true}
	},
	ColumnCategory: func(n models.Note) Cell {
		if !n.HasCategory() {
			return Cell{}
		}
		return Cell{Text: CategoryIcon + " " + n.Category, Visible: true}
	},
	ColumnPinned: func(n models.Note) Cell {
		if !n.Pinned {
			return Cell{}
		}
		return Cell{Text: PinnedIcon, Visible: true}
	},
}

// DefaultColumns is the list row layout.
var DefaultColumns = []ColumnRole{ColumnPinned, ColumnTitle, ColumnCategory, ColumnTimestamp}

// Row formats the note for each role in order. Roles without a formatter
// produce hidden cells.
func Row(n models.Note, roles ...ColumnRole) []Cell {
	cells := make([]Cell, 0, len(roles))
	for _, role := range roles {
		f, ok := Formatters[role]
		if !ok {
			cells = append(cells, Cell{})
			continue
		}
		cells = append(cells, f(n))
	}
	return cells
}

// Line joins the visible cells with two spaces.
func Line(cells []Cell) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c.Visible {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "  ")
}

// Truncate cuts s to at most width terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Pad fills s with spaces to width terminal cells, truncating first.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// ClipText is what gets copied to the clipboard: the title, a blank line,
// then the body.
func ClipText(n models.Note) string {
	return n.Title + "\n\n" + n.Body
}

// URI is the stable reference copied in place of a note's text.
func URI(id int64) string {
	return fmt.Sprintf("notes://note/%d", id)
}

// Preview flattens body onto one line and cuts it to n runes.
func Preview(body string, n int) string {
	preview := strings.Join(strings.Fields(body), " ")
	runes := []rune(preview)
	if len(runes) <= n {
		return preview
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// Relative describes t relative to now, falling back to a timestamp after
// a week.
func Relative(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Local().Format(TimestampLayout)
	}
}
