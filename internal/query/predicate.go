package query

import (
	"strings"

	"github.com/streed/notepad/internal/models"
)

// FoldFunc is the SQL function name under which Fold is registered on every
// database connection.
const FoldFunc = "notepad_fold"

// Fold normalizes text for case-insensitive matching. SQL and in-process
// matching must both use it so they agree beyond ASCII.
func Fold(s string) string {
	return strings.ToLower(s)
}

var textColumns = []string{"title", "body", "category"}

// Predicate selects notes. The zero value matches every note.
type Predicate struct {
	text     string // folded, trimmed; "" means no text constraint
	category CategoryFilter
}

// Match evaluates the predicate against a note in process.
func (p Predicate) Match(n models.Note) bool {
	if p.text != "" {
		found := false
		for _, field := range []string{n.Title, n.Body, n.Category} {
			if strings.Contains(Fold(field), p.text) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !p.category.IsAny() && n.Category != p.category.Name() {
		return false
	}
	return true
}

// Where renders the predicate as a WHERE fragment and its args. It returns
// "" when the predicate matches everything. Substring tests use instr, so
// LIKE wildcards in the search text are matched literally.
func (p Predicate) Where() (string, []any) {
	var conditions []string
	var args []any

	if p.text != "" {
		terms := make([]string, 0, len(textColumns))
		for _, col := range textColumns {
			terms = append(terms, "instr("+FoldFunc+"("+col+"), ?) > 0")
			args = append(args, p.text)
		}
		conditions = append(conditions, "("+strings.Join(terms, " OR ")+")")
	}

	if !p.category.IsAny() {
		conditions = append(conditions, "category = ?")
		args = append(args, p.category.Name())
	}

	return strings.Join(conditions, " AND "), args
}
