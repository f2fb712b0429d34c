// Package query builds the note list query: a predicate from the search text
// and category filter, and the pinned-then-recency sort order.
package query

import (
	"strings"

	"github.com/streed/notepad/internal/constants"
)

// CategoryFilter is either AnyCategory or an exact category name. The zero
// value is AnyCategory, so it cannot collide with a real category.
type CategoryFilter struct {
	name string
	set  bool
}

// AnyCategory places no constraint on category.
var AnyCategory = CategoryFilter{}

// InCategory matches notes whose category equals name exactly. An empty name
// is AnyCategory.
func InCategory(name string) CategoryFilter {
	if name == "" {
		return AnyCategory
	}
	return CategoryFilter{name: name, set: true}
}

// ParseCategory reads a category from a text boundary (flag, query string).
// Empty input and the "all" label mean AnyCategory.
func ParseCategory(s string) CategoryFilter {
	s = strings.TrimSpace(s)
	if s == constants.AllCategoriesLabel {
		return AnyCategory
	}
	return InCategory(s)
}

func (c CategoryFilter) IsAny() bool {
	return !c.set
}

// Name is the category name, or "" for AnyCategory.
func (c CategoryFilter) Name() string {
	return c.name
}

// String is the display label: the name, or "all".
func (c CategoryFilter) String() string {
	if !c.set {
		return constants.AllCategoriesLabel
	}
	return c.name
}

// Label is the on-screen selector text. AnyCategory gets a label no
// category named "all" or "All" can be mistaken for.
func (c CategoryFilter) Label() string {
	if !c.set {
		return constants.AnyCategoryDisplay
	}
	return c.name
}

// Filter is the transient list filter. It is a value: the With methods
// return modified copies.
type Filter struct {
	text     string
	category CategoryFilter
}

func NewFilter(text string, category CategoryFilter) Filter {
	return Filter{text: text, category: category}
}

func (f Filter) WithText(text string) Filter {
	f.text = text
	return f
}

func (f Filter) WithCategory(category CategoryFilter) Filter {
	f.category = category
	return f
}

// Text is the search text with surrounding whitespace removed.
func (f Filter) Text() string {
	return strings.TrimSpace(f.text)
}

// RawText is the search text exactly as entered.
func (f Filter) RawText() string {
	return f.text
}

func (f Filter) Category() CategoryFilter {
	return f.category
}

// Active reports whether the filter constrains the result at all.
func (f Filter) Active() bool {
	return f.Text() != "" || !f.category.IsAny()
}

func (f Filter) Predicate() Predicate {
	p := Predicate{category: f.category}
	if text := f.Text(); text != "" {
		p.text = Fold(text)
	}
	return p
}
