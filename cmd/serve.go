package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/api"
	"github.com/streed/notepad/internal/logger"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start an HTTP API server that exposes your notes via REST endpoints.

The server provides endpoints for:

- Listing notes with the same search and category filters as 'notepad list'
- Creating, updating, pinning, exporting and deleting notes
- Categories and display preferences

Host and port default to the serve-host and serve-port configuration values.

Examples:
  notepad serve                              # Start on localhost:8080
  notepad serve --host 0.0.0.0 --port 3000   # Start on all interfaces, port 3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind the server to")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to bind the server to")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Info("Initializing HTTP API server...")

	host, port := appConfig.ServeHost, appConfig.ServePort
	if serveHost != "" {
		host = serveHost
	}
	if servePort != 0 {
		port = servePort
	}

	apiServer := api.NewAPIServer(appConfig, db.Conn(), noteRepo, prefsRepo, Version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- apiServer.Start(host, port)
	}()

	fmt.Printf("\n🚀 NotePad HTTP API Server\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("📍 Server URL: http://%s:%d\n", host, port)
	fmt.Printf("🔍 Health:     http://%s:%d/api/v1/health\n", host, port)
	fmt.Printf("\n🎯 Example API calls:\n")
	fmt.Printf("   curl http://%s:%d/api/v1/notes\n", host, port)
	fmt.Printf("   curl 'http://%s:%d/api/v1/notes?q=milk&category=Home'\n", host, port)
	fmt.Printf("   curl http://%s:%d/api/v1/categories\n", host, port)
	fmt.Printf("\n✋ Press Ctrl+C to stop the server\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	select {
	case sig := <-sigChan:
		logger.Info("Received signal %v, shutting down gracefully...", sig)
		if err := apiServer.Stop(); err != nil {
			logger.Error("Error during server shutdown: %v", err)
			return err
		}
		logger.Info("Server stopped successfully")
		return nil
	case err := <-errChan:
		if err != nil {
			logger.Error("Server error: %v", err)
			return err
		}
		return nil
	}
}
