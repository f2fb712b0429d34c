package constants

// Boolean string values
const (
	BoolTrue  = "true"
	BoolFalse = "false"
	BoolYes   = "yes"
	BoolNo    = "no"
	BoolOne   = "1"
	BoolZero  = "0"
)

// Sentinel label for "no category constraint" at text boundaries (flags, query strings).
const AllCategoriesLabel = "all"

// Selector text for "no category constraint" on screen.
const AnyCategoryDisplay = "(all categories)"

// Display limits
const (
	PreviewLength      = 100
	ShortPreviewLength = 80
	RecentNotesLimit   = 10

	// Titles derived from pasted text are capped like the editor does.
	DerivedTitleLength = 30
)

// File permissions
const (
	ConfigFileMode = 0600 // Secure file permissions for config
	ExportFileMode = 0644
	LogFileMode    = 0644
	DirMode        = 0755
)
