package preferences

import (
	"fmt"
	"strings"

	interrors "github.com/streed/notepad/internal/errors"
)

const (
	KeyDarkTheme      = "pref_dark_theme"
	KeyEditorTextSize = "pref_editor_text_size"
)

// TextSize is the editor font size setting.
type TextSize string

const (
	TextSizeSmall  TextSize = "small"
	TextSizeNormal TextSize = "normal"
	TextSizeLarge  TextSize = "large"
)

// Points is the font size the setting stands for.
func (s TextSize) Points() int {
	switch s {
	case TextSizeSmall:
		return 16
	case TextSizeLarge:
		return 22
	default:
		return 18
	}
}

func ParseTextSize(s string) (TextSize, error) {
	switch size := TextSize(strings.ToLower(strings.TrimSpace(s))); size {
	case TextSizeSmall, TextSizeNormal, TextSizeLarge:
		return size, nil
	}
	return "", fmt.Errorf("%w: %s", interrors.ErrInvalidTextSize, s)
}

// ParseTheme reports whether s names the dark theme.
func ParseTheme(s string) (dark bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return true, nil
	case "light":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s", interrors.ErrInvalidTheme, s)
}

// UI is the set of display preferences.
type UI struct {
	DarkTheme bool     `json:"dark_theme"`
	TextSize  TextSize `json:"text_size"`
}

func DefaultUI() UI {
	return UI{DarkTheme: false, TextSize: TextSizeNormal}
}

func (u UI) Theme() string {
	if u.DarkTheme {
		return "dark"
	}
	return "light"
}

// LoadUI reads the display preferences. Unset or unrecognised values fall
// back to the defaults.
func (r *Repository) LoadUI() UI {
	ui := DefaultUI()
	ui.DarkTheme = r.GetBool(KeyDarkTheme, ui.DarkTheme)
	if size, err := ParseTextSize(r.GetString(KeyEditorTextSize, string(ui.TextSize))); err == nil {
		ui.TextSize = size
	}
	return ui
}

func (r *Repository) SaveUI(ui UI) error {
	if _, err := ParseTextSize(string(ui.TextSize)); err != nil {
		return err
	}
	if err := r.SetBool(KeyDarkTheme, ui.DarkTheme); err != nil {
		return err
	}
	return r.SetString(KeyEditorTextSize, string(ui.TextSize))
}

// SetByName updates a single display preference from its string form. It
// accepts "theme" (dark/light) and "text-size" (small/normal/large).
func (r *Repository) SetByName(name, value string) (UI, error) {
	ui := r.LoadUI()
	switch name {
	case "theme":
		dark, err := ParseTheme(value)
		if err != nil {
			return ui, err
		}
		ui.DarkTheme = dark
	case "text-size":
		size, err := ParseTextSize(value)
		if err != nil {
			return ui, err
		}
		ui.TextSize = size
	default:
		return ui, fmt.Errorf("%w: %s", interrors.ErrUnknownPreference, name)
	}
	return ui, r.SaveUI(ui)
}
