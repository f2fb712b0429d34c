package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for LLM integration",
	Long: `Start a Model Context Protocol (MCP) server that allows LLMs to work with your notes.

Tools:
- list_notes: List notes, optionally filtered by text and category
- get_note: Retrieve a note by ID
- add_note: Create a note
- update_note: Change a note's title, body or category
- delete_note: Remove a note
- toggle_pin: Pin or unpin a note
- list_categories: List categories in use
- export_note: Write a note to the export directory

Resources:
- notes://recent: The top of the note list
- notes://categories: Categories in use, as JSON

To use with Claude Desktop, add this to your claude_desktop_config.json:
{
  "mcpServers": {
    "notepad": {
      "command": "notepad",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	logger.Info("Starting MCP server...")

	notesServer := mcp.NewNotesServer(appConfig, noteRepo, Version)
	mcpServer := notesServer.GetMCPServer()

	logger.Info("MCP server ready. Listening on stdio...")
	if err := server.ServeStdio(mcpServer); err != nil {
		if err.Error() != "EOF" {
			logger.Error("MCP server error: %v", err)
			return err
		}
	}

	logger.Info("MCP server shutting down")
	return nil
}
