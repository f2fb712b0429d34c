package models

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/streed/notepad/internal/constants"
	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/logger"
)

// Note is a single record in the notes table. Timestamps are epoch
// milliseconds and ModifiedAt is maintained by the repository.
type Note struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Category   string `json:"category,omitempty"`
	CreatedAt  int64  `json:"created_at"`
	ModifiedAt int64  `json:"modified_at"`
	Pinned     bool   `json:"pinned"`
}

func (n Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

func (n Note) Modified() time.Time {
	return time.UnixMilli(n.ModifiedAt)
}

func (n Note) HasCategory() bool {
	return n.Category != ""
}

// NoteFields is a partial set of columns for Insert and Update. Nil fields
// are left untouched.
type NoteFields struct {
	Title    *string `json:"title,omitempty"`
	Body     *string `json:"body,omitempty"`
	Category *string `json:"category,omitempty"`
	Pinned   *bool   `json:"pinned,omitempty"`
}

func (f NoteFields) empty() bool {
	return f.Title == nil && f.Body == nil && f.Category == nil && f.Pinned == nil
}

// Selection is the store's query language: a WHERE fragment with positional
// args and an ORDER BY fragment. Both fragments come from internal/query and
// never from user text.
type Selection struct {
	Where   string
	Args    []any
	OrderBy string
}

const noteColumns = "id, title, body, category, created_at, modified_at, pinned"

type NoteRepository struct {
	db  *sql.DB
	now func() int64
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{
		db:  db,
		now: func() int64 { return time.Now().UnixMilli() },
	}
}

// Query runs sel against the notes table. The caller owns the returned
// cursor and must close it.
func (r *NoteRepository) Query(sel Selection) (Cursor, error) {
	query := "SELECT " + noteColumns + " FROM notes"
	if sel.Where != "" {
		query += " WHERE " + sel.Where
	}
	if sel.OrderBy != "" {
		query += " ORDER BY " + sel.OrderBy
	}
	logger.Debug("Query: %s %v", query, sel.Args)

	rows, err := r.db.Query(query, sel.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	return &rowsCursor{rows: rows}, nil
}

func (r *NoteRepository) Insert(fields NoteFields) (int64, error) {
	var note Note
	applyFields(&note, fields)
	if strings.TrimSpace(note.Title) == "" && strings.TrimSpace(note.Body) == "" {
		return 0, interrors.ErrEmptyNote
	}

	now := r.now()
	result, err := r.db.Exec(
		"INSERT INTO notes (title, body, category, created_at, modified_at, pinned) VALUES (?, ?, ?, ?, ?, ?)",
		note.Title, note.Body, note.Category, now, now, boolToInt(note.Pinned),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	return id, nil
}

func (r *NoteRepository) GetByID(id int64) (*Note, error) {
	row := r.db.QueryRow("SELECT "+noteColumns+" FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interrors.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

// Update applies fields to the note and bumps modified_at. Only the given
// columns are written, so concurrent partial updates don't clobber each other.
func (r *NoteRepository) Update(id int64, fields NoteFields) error {
	if fields.empty() {
		return nil
	}

	var sets []string
	var args []any
	if fields.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Body != nil {
		sets = append(sets, "body = ?")
		args = append(args, *fields.Body)
	}
	if fields.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, strings.TrimSpace(*fields.Category))
	}
	if fields.Pinned != nil {
		sets = append(sets, "pinned = ?")
		args = append(args, boolToInt(*fields.Pinned))
	}
	sets = append(sets, "modified_at = max(?, created_at)")
	args = append(args, r.now(), id)

	result, err := r.db.Exec("UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return interrors.ErrNoteNotFound
	}
	return nil
}

// TogglePin flips the pinned flag in a single statement and returns the new
// state.
func (r *NoteRepository) TogglePin(id int64) (bool, error) {
	var pinned int
	err := r.db.QueryRow(
		"UPDATE notes SET pinned = 1 - pinned, modified_at = max(?, created_at) WHERE id = ? RETURNING pinned",
		r.now(), id,
	).Scan(&pinned)
	if errors.Is(err, sql.ErrNoRows) {
		return false, interrors.ErrNoteNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle pin: %w", err)
	}
	return pinned == 1, nil
}

func (r *NoteRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return interrors.ErrNoteNotFound
	}

	return nil
}

// Categories returns the distinct non-blank categories, sorted without
// regard to case.
func (r *NoteRepository) Categories() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT category FROM notes WHERE TRIM(category) != ''")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categoryLess(categories[i], categories[j])
	})
	return categories, nil
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryCounts returns the number of notes filed under each non-blank
// category, in the same order as Categories.
func (r *NoteRepository) CategoryCounts() ([]CategoryCount, error) {
	rows, err := r.db.Query("SELECT category, COUNT(*) FROM notes WHERE TRIM(category) != '' GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return categoryLess(counts[i].Name, counts[j].Name)
	})
	return counts, nil
}

func categoryLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return la < lb
}

func (r *NoteRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// TitleFromBody derives a title from free text the way the editor does for
// pasted notes: the first non-blank line, cut to a word boundary when it is
// longer than the title limit.
func TitleFromBody(body string) string {
	var line string
	for _, l := range strings.Split(body, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if utf8.RuneCountInString(line) <= constants.DerivedTitleLength {
		return line
	}

	runes := []rune(line)
	title := string(runes[:constants.DerivedTitleLength])
	if i := strings.LastIndex(title, " "); i > 0 {
		title = title[:i]
	}
	return title
}

func applyFields(note *Note, fields NoteFields) {
	if fields.Title != nil {
		note.Title = *fields.Title
	}
	if fields.Body != nil {
		note.Body = *fields.Body
	}
	if fields.Category != nil {
		note.Category = strings.TrimSpace(*fields.Category)
	}
	if fields.Pinned != nil {
		note.Pinned = *fields.Pinned
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (Note, error) {
	var note Note
	var pinned int
	err := s.Scan(&note.ID, &note.Title, &note.Body, &note.Category,
		&note.CreatedAt, &note.ModifiedAt, &pinned)
	note.Pinned = pinned == 1
	return note, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
