// Package listing owns the note list screen state: the current filter, the
// last query result, and the transitions between them.
package listing

import (
	"fmt"

	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
	"github.com/streed/notepad/internal/query"
)

// Action is a user intent that may change the filter.
type Action interface {
	action()
}

// TextChanged is sent on every keystroke in the search box.
type TextChanged struct{ Text string }

// TextSubmitted is sent when the search box is submitted.
type TextSubmitted struct{ Text string }

type CategorySelected struct{ Category query.CategoryFilter }

// Cleared resets both the text and the category.
type Cleared struct{}

// Refreshed re-runs the current filter, e.g. after a note was changed.
type Refreshed struct{}

// Applied replaces the whole filter at once.
type Applied struct{ Filter query.Filter }

func (TextChanged) action()      {}
func (TextSubmitted) action()    {}
func (CategorySelected) action() {}
func (Cleared) action()          {}
func (Refreshed) action()        {}
func (Applied) action()          {}

// Reduce returns the filter that results from applying a to f.
func Reduce(f query.Filter, a Action) query.Filter {
	switch a := a.(type) {
	case TextChanged:
		return f.WithText(a.Text)
	case TextSubmitted:
		return f.WithText(a.Text)
	case CategorySelected:
		return f.WithCategory(a.Category)
	case Cleared:
		return query.Filter{}
	case Applied:
		return a.Filter
	}
	return f
}

// View is what the screen shows for one query.
type View struct {
	Filter query.Filter
	Notes  []models.Note
	Err    error
}

func (v View) Count() int {
	return len(v.Notes)
}

// ShowCount reports whether the result count should be displayed.
func (v View) ShowCount() bool {
	return v.Err == nil && v.Filter.Active()
}

func (v View) CountLabel() string {
	if v.Count() == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", v.Count())
}

func (v View) Empty() bool {
	return len(v.Notes) == 0
}

// Screen runs the pipeline for the current filter and keeps the latest
// result. It is not safe for concurrent use.
type Screen struct {
	store  query.Store
	render func(View)
	view   View
}

// NewScreen returns a screen with no filter and no result. Dispatch
// Refreshed to load the first page. render may be nil.
func NewScreen(store query.Store, render func(View)) *Screen {
	return &Screen{
		store:  store,
		render: render,
		view:   View{Notes: []models.Note{}},
	}
}

// Dispatch applies a, re-queries, and replaces the current view. The
// previous result is released before the new one is shown.
func (s *Screen) Dispatch(a Action) View {
	filter := Reduce(s.view.Filter, a)
	notes, err := query.Notes(s.store, filter)
	if err != nil {
		logger.Error("Failed to load notes (text=%q, category=%s): %v", filter.Text(), filter.Category(), err)
		notes = []models.Note{}
	}

	s.view = View{Filter: filter, Notes: notes, Err: err}
	if s.render != nil {
		s.render(s.view)
	}
	return s.view
}

func (s *Screen) Filter() query.Filter {
	return s.view.Filter
}

func (s *Screen) View() View {
	return s.view
}

// NoteAt returns the note in row i of the current view.
func (s *Screen) NoteAt(i int) (models.Note, bool) {
	if i < 0 || i >= len(s.view.Notes) {
		logger.Warn("Selection %d out of range (%d notes)", i, len(s.view.Notes))
		return models.Note{}, false
	}
	return s.view.Notes[i], true
}
