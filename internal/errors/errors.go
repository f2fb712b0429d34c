package errors

import "errors"

// Common errors used throughout the application
var (
	// Database errors
	ErrNoteNotFound  = errors.New("note not found")
	ErrDatabaseQuery = errors.New("database query failed")

	// Validation errors
	ErrEmptyNote         = errors.New("note needs a title or a body")
	ErrInvalidBoolean    = errors.New("invalid boolean value (use true/false)")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidNoteID     = errors.New("invalid note ID")
	ErrUnknownPreference = errors.New("unknown preference")
	ErrInvalidTextSize   = errors.New("invalid text size (use small/normal/large)")
	ErrInvalidTheme      = errors.New("invalid theme (use dark/light)")
	ErrInvalidPort       = errors.New("invalid port")

	// UI errors
	ErrExportFailed  = errors.New("export failed")
	ErrClipboardFail = errors.New("clipboard unavailable")
)
