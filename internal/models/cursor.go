package models

import (
	"database/sql"
	"fmt"
)

// Cursor is a one-shot, single-reader sequence of notes. Whoever obtains a
// cursor must Close it, including when a newer query supersedes it.
type Cursor interface {
	// Next advances to the next note. It returns false at the end of the
	// sequence, on error, and after Close.
	Next() bool
	// Note returns the note Next advanced to.
	Note() Note
	Err() error
	// Close releases the underlying store resource. It is safe to call
	// more than once.
	Close() error
}

type rowsCursor struct {
	rows    *sql.Rows
	current Note
	err     error
	closed  bool
}

func (c *rowsCursor) Next() bool {
	if c.closed || c.err != nil {
		return false
	}
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			c.err = fmt.Errorf("error iterating rows: %w", err)
		}
		return false
	}
	note, err := scanNote(c.rows)
	if err != nil {
		c.err = fmt.Errorf("failed to scan note: %w", err)
		return false
	}
	c.current = note
	return true
}

func (c *rowsCursor) Note() Note {
	return c.current
}

func (c *rowsCursor) Err() error {
	return c.err
}

func (c *rowsCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}
