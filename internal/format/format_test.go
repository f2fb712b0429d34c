package format

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"
	"github.com/streed/notepad/internal/models"
)

func TestFormatters(t *testing.T) {
	modified := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	note := models.Note{
		Title:      "Groceries",
		Category:   "Home",
		ModifiedAt: modified.UnixMilli(),
		Pinned:     true,
	}
	bare := models.Note{Title: "   ", ModifiedAt: modified.UnixMilli()}

	tests := []struct {
		name string
		role ColumnRole
		note models.Note
		want Cell
	}{
		{"title", ColumnTitle, note, Cell{"Groceries", true}},
		{"untitled", ColumnTitle, bare, Cell{Untitled, true}},
		{"timestamp", ColumnTimestamp, note, Cell{"2024-03-09 14:05", true}},
		{"category", ColumnCategory, note, Cell{"📁 Home", true}},
		{"no category", ColumnCategory, bare, Cell{}},
		{"pinned", ColumnPinned, note, Cell{"📌", true}},
		{"not pinned", ColumnPinned, bare, Cell{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Formatters[tt.role](tt.note); got != tt.want {
				t.Errorf("%s formatter = %+v, want %+v", tt.role, got, tt.want)
			}
		})
	}
}

func TestEveryRoleHasAFormatter(t *testing.T) {
	for _, role := range []ColumnRole{ColumnTitle, ColumnTimestamp, ColumnCategory, ColumnPinned} {
		if _, ok := Formatters[role]; !ok {
			t.Errorf("No formatter for %s", role)
		}
	}
}

func TestRowAndLine(t *testing.T) {
	note := models.Note{Title: "Work plan", Category: "Work", ModifiedAt: time.Now().UnixMilli()}

	cells := Row(note, ColumnPinned, ColumnTitle, ColumnCategory, ColumnRole(99))
	want := []Cell{{}, {"Work plan", true}, {"📁 Work", true}, {}}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Errorf("Row mismatch (-want +got):\n%s", diff)
	}
	if got := Line(cells); got != "Work plan  📁 Work" {
		t.Errorf("Line() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title", 8, "a longe…"},
		{"日本語のノート", 6, "日本…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if runewidth.StringWidth(got) > tt.width {
				t.Errorf("Truncate(%q, %d) is %d cells wide", tt.in, tt.width, runewidth.StringWidth(got))
			}
		})
	}

	if got := Pad("ab", 4); got != "ab  " {
		t.Errorf("Pad() = %q", got)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		body string
		n    int
		want string
	}{
		{"short", "milk", 10, "milk"},
		{"newlines flattened", "milk\neggs\n\nbread", 50, "milk eggs bread"},
		{"cut", "abcdefghijkl", 8, "abcde..."},
		{"runes", "äöüäöüäöü", 6, "äöü..."},
		{"tiny", "abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.body, tt.n); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClipText(t *testing.T) {
	got := ClipText(models.Note{Title: "Groceries", Body: "milk\neggs"})
	if got != "Groceries\n\nmilk\neggs" {
		t.Errorf("ClipText() = %q", got)
	}
	if got := URI(42); got != "notes://note/42" {
		t.Errorf("URI() = %q", got)
	}
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
		{8 * 24 * time.Hour, "2024-03-01 12:00"},
	}
	for _, tt := range tests {
		if got := Relative(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("Relative(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
