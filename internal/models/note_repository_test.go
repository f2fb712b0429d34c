package models

import (
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	interrors "github.com/streed/notepad/internal/errors"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			modified_at INTEGER NOT NULL,
			pinned INTEGER NOT NULL DEFAULT 0 CHECK (pinned IN (0, 1)),
			CHECK (modified_at >= created_at)
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create notes table: %v", err)
	}

	return db, func() { db.Close() }
}

// newTestRepository returns a repository whose clock advances by one second
// per call.
func newTestRepository(db *sql.DB) *NoteRepository {
	repo := NewNoteRepository(db)
	var clock int64 = 1_700_000_000_000
	repo.now = func() int64 {
		clock += 1000
		return clock
	}
	return repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNoteRepository_Insert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	id, err := repo.Insert(NoteFields{
		Title:    strPtr("Groceries"),
		Body:     strPtr("milk"),
		Category: strPtr("  Home "),
		Pinned:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	note, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	want := &Note{
		ID:         id,
		Title:      "Groceries",
		Body:       "milk",
		Category:   "Home",
		CreatedAt:  note.CreatedAt,
		ModifiedAt: note.CreatedAt,
		Pinned:     true,
	}
	if diff := cmp.Diff(want, note); diff != "" {
		t.Errorf("note mismatch (-want +got):\n%s", diff)
	}
}

func TestNoteRepository_InsertEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	tests := []struct {
		name   string
		fields NoteFields
	}{
		{"no fields", NoteFields{}},
		{"blank title and body", NoteFields{Title: strPtr("  "), Body: strPtr("\n\t")}},
		{"category only", NoteFields{Category: strPtr("Work")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Insert(tt.fields); !errors.Is(err, interrors.ErrEmptyNote) {
				t.Errorf("Expected ErrEmptyNote, got %v", err)
			}
		})
	}

	if _, err := repo.Insert(NoteFields{Body: strPtr("body only")}); err != nil {
		t.Errorf("Body-only note should be accepted: %v", err)
	}
}

func TestNoteRepository_GetByIDNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	if _, err := repo.GetByID(42); !errors.Is(err, interrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteRepository_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	id, err := repo.Insert(NoteFields{Title: strPtr("Draft"), Body: strPtr("first")})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	before, _ := repo.GetByID(id)

	if err := repo.Update(id, NoteFields{Body: strPtr("second"), Category: strPtr("Work")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	after, _ := repo.GetByID(id)

	if after.Title != "Draft" {
		t.Errorf("Title should be untouched, got %q", after.Title)
	}
	if after.Body != "second" || after.Category != "Work" {
		t.Errorf("Update not applied: %+v", after)
	}
	if after.CreatedAt != before.CreatedAt {
		t.Error("CreatedAt must not change on update")
	}
	if after.ModifiedAt <= before.ModifiedAt {
		t.Errorf("ModifiedAt should advance: before=%d after=%d", before.ModifiedAt, after.ModifiedAt)
	}
}

func TestNoteRepository_UpdateNoFields(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	id, _ := repo.Insert(NoteFields{Title: strPtr("Draft")})
	before, _ := repo.GetByID(id)

	if err := repo.Update(id, NoteFields{}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	after, _ := repo.GetByID(id)
	if after.ModifiedAt != before.ModifiedAt {
		t.Error("Empty update should not touch ModifiedAt")
	}
}

func TestNoteRepository_UpdateClockBehind(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	id, _ := repo.Insert(NoteFields{Title: strPtr("Draft")})
	note, _ := repo.GetByID(id)

	repo.now = func() int64 { return note.CreatedAt - 5000 }
	if err := repo.Update(id, NoteFields{Body: strPtr("late")}); err != nil {
		t.Fatalf("Update with a clock behind created_at failed: %v", err)
	}
	after, _ := repo.GetByID(id)
	if after.ModifiedAt != after.CreatedAt {
		t.Errorf("ModifiedAt should be clamped to CreatedAt, got %d vs %d", after.ModifiedAt, after.CreatedAt)
	}
}

func TestNoteRepository_UpdateNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	if err := repo.Update(99, NoteFields{Title: strPtr("x")}); !errors.Is(err, interrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteRepository_TogglePin(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	id, _ := repo.Insert(NoteFields{Title: strPtr("Pin me")})
	before, _ := repo.GetByID(id)

	pinned, err := repo.TogglePin(id)
	if err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if !pinned {
		t.Error("Expected note to be pinned")
	}

	after, _ := repo.GetByID(id)
	if !after.Pinned {
		t.Error("Pinned flag not stored")
	}
	if after.ModifiedAt <= before.ModifiedAt {
		t.Error("Pinning should bump ModifiedAt")
	}

	pinned, err = repo.TogglePin(id)
	if err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if pinned {
		t.Error("Expected note to be unpinned")
	}

	if _, err := repo.TogglePin(12345); !errors.Is(err, interrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteRepository_TogglePinConcurrent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	id, err := repo.Insert(NoteFields{Title: strPtr("Contended")})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	const toggles = 20
	var wg sync.WaitGroup
	errs := make(chan error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.TogglePin(id); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("TogglePin failed: %v", err)
	}

	note, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if note.Pinned {
		t.Errorf("An even number of toggles should leave the note unpinned")
	}
}

func TestNoteRepository_UpdateConcurrentFields(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	id, err := repo.Insert(NoteFields{Title: strPtr("Draft"), Body: strPtr("first")})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, fields := range []NoteFields{
		{Title: strPtr("Final")},
		{Category: strPtr("Work")},
	} {
		wg.Add(1)
		go func(fields NoteFields) {
			defer wg.Done()
			if err := repo.Update(id, fields); err != nil {
				errs <- err
			}
		}(fields)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Update failed: %v", err)
	}

	note, _ := repo.GetByID(id)
	if note.Title != "Final" || note.Category != "Work" || note.Body != "first" {
		t.Errorf("Both partial updates should survive, got %+v", note)
	}
}

func TestNoteRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	id, _ := repo.Insert(NoteFields{Title: strPtr("Temporary")})
	if err := repo.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(id); !errors.Is(err, interrors.ErrNoteNotFound) {
		t.Errorf("Expected deleted note to be gone, got %v", err)
	}
	if err := repo.Delete(id); !errors.Is(err, interrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound on second delete, got %v", err)
	}
}

func TestNoteRepository_CategoriesAndCount(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	categories, err := repo.Categories()
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("Expected no categories, got %v", categories)
	}

	for _, c := range []string{"work", "Home", "", "Work", "home", "Home", "   "} {
		if _, err := repo.Insert(NoteFields{Title: strPtr("n"), Category: strPtr(c)}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	categories, err = repo.Categories()
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	want := []string{"Home", "home", "Work", "work"}
	if diff := cmp.Diff(want, categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	counts, err := repo.CategoryCounts()
	if err != nil {
		t.Fatalf("CategoryCounts failed: %v", err)
	}
	wantCounts := []CategoryCount{{"Home", 2}, {"home", 1}, {"Work", 1}, {"work", 1}}
	if diff := cmp.Diff(wantCounts, counts); diff != "" {
		t.Errorf("category counts mismatch (-want +got):\n%s", diff)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 7 {
		t.Errorf("Expected 7 notes, got %d", count)
	}
}

func TestNoteRepository_Query(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	for _, title := range []string{"alpha", "beta", "gamma"} {
		if _, err := repo.Insert(NoteFields{Title: strPtr(title), Category: strPtr("Greek")}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	cursor, err := repo.Query(Selection{
		Where:   "title != ?",
		Args:    []any{"beta"},
		OrderBy: "id DESC",
	})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	var got []string
	for cursor.Next() {
		got = append(got, cursor.Note().Title)
	}
	if err := cursor.Err(); err != nil {
		t.Fatalf("Cursor error: %v", err)
	}
	if diff := cmp.Diff([]string{"gamma", "alpha"}, got); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}

	if err := cursor.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := cursor.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
	if cursor.Next() {
		t.Error("Closed cursor should not advance")
	}
}

func TestNoteRepository_QueryBadSelection(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := newTestRepository(db)

	if _, err := repo.Query(Selection{Where: "no_such_column = 1"}); err == nil {
		t.Error("Expected an error for an invalid selection")
	}
}
