package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/config"
	"github.com/streed/notepad/internal/database"
	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
	"github.com/streed/notepad/internal/preferences"
)

var (
	db        *database.DB
	noteRepo  *models.NoteRepository
	prefsRepo *preferences.Repository
	appConfig *config.Config
	debugFlag bool
	Version   = "dev" // Version is set from main.go
)

var rootCmd = &cobra.Command{
	Use:     "notepad",
	Short:   "A small note pad with categories, pinning and search",
	Version: Version,
	Long: `notepad keeps short text notes in a local SQLite database.

Notes can be filed under a category and pinned to the top of the list.
The list can be narrowed by a case-insensitive text search, a category, or both.

First time users should run 'notepad init' to set up the configuration.`,
}

func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initAppConfig)
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

func initAppConfig() {
	// Skip initialization for init and config commands
	if len(os.Args) > 1 && (os.Args[1] == "init" || os.Args[1] == "config") {
		return
	}

	var err error
	appConfig, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please run 'notepad init' to set up the configuration.\n")
		os.Exit(1)
	}

	if debugFlag || appConfig.Debug {
		logger.SetDebugMode(true)
		logger.Debug("Configuration loaded from: %s", func() string {
			path, _ := config.GetConfigPath()
			return path
		}())
		logger.Debug("Data directory: %s", appConfig.DataDirectory)
		logger.Debug("Export directory: %s", appConfig.GetExportDirectory())
	}

	db, err = database.New(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}

	noteRepo = models.NewNoteRepository(db.Conn())
	prefsRepo = preferences.NewRepository(db.Conn())
}

// parseNoteID parses a note ID argument.
func parseNoteID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", interrors.ErrInvalidNoteID, arg)
	}
	return id, nil
}
