package cmd

import (
	"errors"
	"testing"

	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/models"
)

func strp(s string) *string { return &s }

func TestParseEditable(t *testing.T) {
	note := models.Note{ID: 1, Title: "Groceries", Body: "milk", Category: "Home"}

	tests := []struct {
		name   string
		edited string
		want   models.NoteFields
	}{
		{
			name:   "unchanged",
			edited: renderEditable(note),
			want:   models.NoteFields{},
		},
		{
			name:   "body only",
			edited: "Title: Groceries\nCategory: Home\n---\nmilk\neggs\n",
			want:   models.NoteFields{Body: strp("milk\neggs")},
		},
		{
			name:   "title and category",
			edited: "Title: Shopping\nCategory: Errands\n---\nmilk",
			want:   models.NoteFields{Title: strp("Shopping"), Category: strp("Errands")},
		},
		{
			name:   "category cleared",
			edited: "Title: Groceries\nCategory:\n---\nmilk",
			want:   models.NoteFields{Category: strp("")},
		},
		{
			name:   "header removed",
			edited: "just some text\n",
			want:   models.NoteFields{Body: strp("just some text")},
		},
		{
			name:   "header lines without separator stay in the body",
			edited: "Title: Other\nbread",
			want:   models.NoteFields{Body: strp("Title: Other\nbread")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseEditable(tt.edited, note)
			if !sameField(got.Title, tt.want.Title) || !sameField(got.Body, tt.want.Body) || !sameField(got.Category, tt.want.Category) {
				t.Errorf("parseEditable() = %s, want %s", describe(got), describe(tt.want))
			}
			if got.Pinned != nil {
				t.Error("Editing must not touch the pinned flag")
			}
		})
	}
}

func sameField(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func describe(f models.NoteFields) string {
	show := func(p *string) string {
		if p == nil {
			return "<nil>"
		}
		return "\"" + *p + "\""
	}
	return "{title:" + show(f.Title) + " body:" + show(f.Body) + " category:" + show(f.Category) + "}"
}

func TestParseNoteID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseNoteID(tt.arg)
			if tt.wantErr {
				if !errors.Is(err, interrors.ErrInvalidNoteID) {
					t.Errorf("Expected ErrInvalidNoteID, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseNoteID(%q) = %d, %v", tt.arg, got, err)
			}
		})
	}
}
