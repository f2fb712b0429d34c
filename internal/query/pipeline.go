package query

import (
	"fmt"
	"strings"

	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
)

// SortKey orders by one column.
type SortKey struct {
	Column string
	Desc   bool
}

// SortOrder is applied left to right.
type SortOrder []SortKey

// DefaultOrder puts pinned notes first, then the most recently modified.
// Equal (pinned, modified_at) pairs fall back to the newest id so the order
// never depends on the store.
var DefaultOrder = SortOrder{
	{Column: "pinned", Desc: true},
	{Column: "modified_at", Desc: true},
	{Column: "id", Desc: true},
}

var sortValues = map[string]func(models.Note) int64{
	"pinned": func(n models.Note) int64 {
		if n.Pinned {
			return 1
		}
		return 0
	},
	"modified_at": func(n models.Note) int64 { return n.ModifiedAt },
	"created_at":  func(n models.Note) int64 { return n.CreatedAt },
	"id":          func(n models.Note) int64 { return n.ID },
}

func (o SortOrder) SQL() string {
	parts := make([]string, 0, len(o))
	for _, key := range o {
		dir := "ASC"
		if key.Desc {
			dir = "DESC"
		}
		parts = append(parts, key.Column+" "+dir)
	}
	return strings.Join(parts, ", ")
}

// Less reports whether a sorts before b.
func (o SortOrder) Less(a, b models.Note) bool {
	for _, key := range o {
		value, ok := sortValues[key.Column]
		if !ok {
			continue
		}
		va, vb := value(a), value(b)
		if va == vb {
			continue
		}
		if key.Desc {
			return va > vb
		}
		return va < vb
	}
	return false
}

// Store is the part of the note store the pipeline reads from.
type Store interface {
	Query(sel models.Selection) (models.Cursor, error)
}

// Run executes filter against store in DefaultOrder. The caller owns the
// returned cursor. Store failures wrap ErrDatabaseQuery and are not retried.
func Run(store Store, filter Filter) (models.Cursor, error) {
	where, args := filter.Predicate().Where()
	cursor, err := store.Query(models.Selection{
		Where:   where,
		Args:    args,
		OrderBy: DefaultOrder.SQL(),
	})
	if err != nil {
		logger.Debug("Note query failed (text=%q, category=%s): %v", filter.Text(), filter.Category(), err)
		return nil, fmt.Errorf("%w: %w", interrors.ErrDatabaseQuery, err)
	}
	return cursor, nil
}

// Collect drains cursor into a slice and closes it. An empty result is an
// empty, non-nil slice.
func Collect(cursor models.Cursor) (notes []models.Note, err error) {
	defer func() {
		if closeErr := cursor.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", interrors.ErrDatabaseQuery, closeErr)
		}
	}()

	notes = []models.Note{}
	for cursor.Next() {
		notes = append(notes, cursor.Note())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", interrors.ErrDatabaseQuery, err)
	}
	return notes, nil
}

// Notes runs filter and collects the result.
func Notes(store Store, filter Filter) ([]models.Note, error) {
	cursor, err := Run(store, filter)
	if err != nil {
		return nil, err
	}
	return Collect(cursor)
}
