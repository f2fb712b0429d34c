package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/streed/notepad/internal/config"
	"github.com/streed/notepad/internal/constants"
	"github.com/streed/notepad/internal/export"
	"github.com/streed/notepad/internal/format"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
	"github.com/streed/notepad/internal/query"
)

type NotesServer struct {
	cfg       *config.Config
	repo      *models.NoteRepository
	exporter  *export.Exporter
	mcpServer *server.MCPServer
}

func NewNotesServer(cfg *config.Config, repo *models.NoteRepository, version string) *NotesServer {
	ns := &NotesServer{
		cfg:      cfg,
		repo:     repo,
		exporter: export.New(cfg.GetExportDirectory()),
	}

	ns.mcpServer = server.NewMCPServer(
		"notepad",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	ns.registerTools()
	ns.registerResources()

	return ns
}

func (s *NotesServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *NotesServer) registerTools() {
	listNotesTool := mcp.NewTool("list_notes",
		mcp.WithDescription("List notes, pinned first then most recently modified. Optionally filter by text (case-insensitive, matches title, body and category) and by exact category."),
		mcp.WithString("query",
			mcp.Description("Text to search for (optional)"),
		),
		mcp.WithString("category",
			mcp.Description("Exact category name, or \"all\" (optional)"),
		),
	)
	s.mcpServer.AddTool(listNotesTool, s.handleListNotes)

	getNoteTool := mcp.NewTool("get_note",
		mcp.WithDescription("Get a specific note by ID"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the note to retrieve"),
		),
	)
	s.mcpServer.AddTool(getNoteTool, s.handleGetNote)

	addNoteTool := mcp.NewTool("add_note",
		mcp.WithDescription("Add a new note. A title or a body is required."),
		mcp.WithString("title",
			mcp.Description("The title of the note"),
		),
		mcp.WithString("body",
			mcp.Description("The body of the note"),
		),
		mcp.WithString("category",
			mcp.Description("Category for the note (optional)"),
		),
		mcp.WithBoolean("pinned",
			mcp.Description("Pin the note to the top of the list (default: false)"),
		),
	)
	s.mcpServer.AddTool(addNoteTool, s.handleAddNote)

	updateNoteTool := mcp.NewTool("update_note",
		mcp.WithDescription("Update an existing note. Only the given fields change."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the note to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title (optional)"),
		),
		mcp.WithString("body",
			mcp.Description("New body (optional)"),
		),
		mcp.WithString("category",
			mcp.Description("New category; empty string removes it (optional)"),
		),
	)
	s.mcpServer.AddTool(updateNoteTool, s.handleUpdateNote)

	deleteNoteTool := mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note by ID"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the note to delete"),
		),
	)
	s.mcpServer.AddTool(deleteNoteTool, s.handleDeleteNote)

	togglePinTool := mcp.NewTool("toggle_pin",
		mcp.WithDescription("Pin or unpin a note"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the note"),
		),
	)
	s.mcpServer.AddTool(togglePinTool, s.handleTogglePin)

	listCategoriesTool := mcp.NewTool("list_categories",
		mcp.WithDescription("List the categories in use"),
	)
	s.mcpServer.AddTool(listCategoriesTool, s.handleListCategories)

	exportNoteTool := mcp.NewTool("export_note",
		mcp.WithDescription("Export a note to a text file in the export directory"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the note to export"),
		),
	)
	s.mcpServer.AddTool(exportNoteTool, s.handleExportNote)
}

func (s *NotesServer) registerResources() {
	recentResource := mcp.NewResource("notes://recent",
		"Recent Notes",
		mcp.WithResourceDescription("The top of the note list: pinned notes, then the most recently modified"),
		mcp.WithMIMEType("text/plain"),
	)
	s.mcpServer.AddResource(recentResource, s.handleRecentNotes)

	categoriesResource := mcp.NewResource("notes://categories",
		"Categories",
		mcp.WithResourceDescription("Distinct note categories"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(categoriesResource, s.handleCategoriesResource)
}

// Tool handlers
func (s *NotesServer) handleListNotes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: list_notes")

	filter := query.NewFilter(
		request.GetString("query", ""),
		query.ParseCategory(request.GetString("category", "")),
	)
	notes, err := query.Notes(s.repo, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		if filter.Active() {
			return mcp.NewToolResultText("No notes match."), nil
		}
		return mcp.NewToolResultText("No notes yet."), nil
	}

	var b strings.Builder
	if filter.Active() {
		fmt.Fprintf(&b, "Found %d note(s):\n\n", len(notes))
	}
	for _, note := range notes {
		writeNoteSummary(&b, note)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *NotesServer) handleGetNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: get_note")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	note, err := s.repo.GetByID(int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("ID: %d\n%s", note.ID, export.Render(*note))), nil
}

func (s *NotesServer) handleAddNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: add_note")

	title := request.GetString("title", "")
	body := request.GetString("body", "")
	category := request.GetString("category", "")
	pinned := request.GetBool("pinned", false)

	if strings.TrimSpace(title) == "" {
		title = models.TitleFromBody(body)
	}

	id, err := s.repo.Insert(models.NoteFields{
		Title:    &title,
		Body:     &body,
		Category: &category,
		Pinned:   &pinned,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Note created successfully with ID: %d\nTitle: %s", id, title)), nil
}

func (s *NotesServer) handleUpdateNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: update_note")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	var fields models.NoteFields
	args := request.GetArguments()
	if v, ok := args["title"].(string); ok {
		fields.Title = &v
	}
	if v, ok := args["body"].(string); ok {
		fields.Body = &v
	}
	if v, ok := args["category"].(string); ok {
		fields.Category = &v
	}

	if err := s.repo.Update(int64(id), fields); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	note, err := s.repo.GetByID(int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note %d updated successfully.\nTitle: %s", note.ID, note.Title)), nil
}

func (s *NotesServer) handleDeleteNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: delete_note")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	if err := s.repo.Delete(int64(id)); err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted note %d", id)), nil
}

func (s *NotesServer) handleTogglePin(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: toggle_pin")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	pinned, err := s.repo.TogglePin(int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to toggle pin: %w", err)
	}

	if pinned {
		return mcp.NewToolResultText(fmt.Sprintf("Note %d pinned", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note %d unpinned", id)), nil
}

func (s *NotesServer) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: list_categories")

	categories, err := s.repo.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return mcp.NewToolResultText("No categories."), nil
	}
	return mcp.NewToolResultText(strings.Join(categories, "\n")), nil
}

func (s *NotesServer) handleExportNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: export_note")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	note, err := s.repo.GetByID(int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	path, err := s.exporter.Export(*note)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Note %d exported to %s", id, path)), nil
}

// Resource handlers
func (s *NotesServer) handleRecentNotes(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logger.Debug("MCP resource read: notes://recent")

	notes, err := query.Notes(s.repo, query.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get recent notes: %w", err)
	}
	if len(notes) > constants.RecentNotesLimit {
		notes = notes[:constants.RecentNotesLimit]
	}

	var b strings.Builder
	b.WriteString("Recent Notes:\n\n")
	for _, note := range notes {
		writeNoteSummary(&b, note)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     b.String(),
		},
	}, nil
}

func (s *NotesServer) handleCategoriesResource(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logger.Debug("MCP resource read: notes://categories")

	categories, err := s.repo.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func writeNoteSummary(b *strings.Builder, note models.Note) {
	cells := format.Row(note, format.DefaultColumns...)
	fmt.Fprintf(b, "[ID: %d] %s\n", note.ID, format.Line(cells))
	if preview := format.Preview(note.Body, constants.PreviewLength); preview != "" {
		fmt.Fprintf(b, "   %s\n", preview)
	}
	b.WriteString("\n")
}
