package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/streed/notepad/internal/config"
	interrors "github.com/streed/notepad/internal/errors"
	"github.com/streed/notepad/internal/export"
	"github.com/streed/notepad/internal/logger"
	"github.com/streed/notepad/internal/models"
	"github.com/streed/notepad/internal/preferences"
	"github.com/streed/notepad/internal/query"
)

type APIServer struct {
	cfg     *config.Config
	db      *sql.DB
	repo    *models.NoteRepository
	prefs   *preferences.Repository
	version string
	server  *http.Server
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListNotesResponse is the body of GET /notes. Filtered reports whether a
// text or category constraint was applied.
type ListNotesResponse struct {
	Notes    []models.Note `json:"notes"`
	Count    int           `json:"count"`
	Filtered bool          `json:"filtered"`
	Query    string        `json:"query,omitempty"`
	Category string        `json:"category"`
}

type PinResponse struct {
	ID     int64 `json:"id"`
	Pinned bool  `json:"pinned"`
}

type UpdatePreferencesRequest struct {
	Theme    string `json:"theme,omitempty"`
	TextSize string `json:"text_size,omitempty"`
}

func NewAPIServer(cfg *config.Config, db *sql.DB, repo *models.NoteRepository, prefs *preferences.Repository, version string) *APIServer {
	return &APIServer{
		cfg:     cfg,
		db:      db,
		repo:    repo,
		prefs:   prefs,
		version: version,
	}
}

// Router returns the API handler with CORS and request logging applied.
func (s *APIServer) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Notes endpoints
	api.HandleFunc("/notes", s.handleListNotes).Methods("GET")
	api.HandleFunc("/notes", s.handleCreateNote).Methods("POST")
	api.HandleFunc("/notes/{id:[0-9]+}", s.handleGetNote).Methods("GET")
	api.HandleFunc("/notes/{id:[0-9]+}", s.handleUpdateNote).Methods("PUT")
	api.HandleFunc("/notes/{id:[0-9]+}", s.handleDeleteNote).Methods("DELETE")
	api.HandleFunc("/notes/{id:[0-9]+}/pin", s.handleTogglePin).Methods("POST")
	api.HandleFunc("/notes/{id:[0-9]+}/export", s.handleExportNote).Methods("GET")

	api.HandleFunc("/categories", s.handleListCategories).Methods("GET")

	// Preferences endpoints
	api.HandleFunc("/preferences", s.handleGetPreferences).Methods("GET")
	api.HandleFunc("/preferences", s.handleUpdatePreferences).Methods("PUT")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	})

	return c.Handler(router)
}

func (s *APIServer) Start(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Starting HTTP API server on %s", addr)
	return s.server.ListenAndServe()
}

func (s *APIServer) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger.LogRequest(r.Method, r.URL.Path, r.RemoteAddr)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.LogResponse(r.Method, r.URL.Path, rec.status, time.Since(start).String())
	})
}

func (s *APIServer) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: statusCode < 400,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode JSON response: %v", err)
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: false,
		Error:   err.Error(),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode JSON response: %v", err)
	}
}

// writeStoreError maps repository errors onto HTTP statuses.
func (s *APIServer) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interrors.ErrNoteNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, interrors.ErrEmptyNote),
		errors.Is(err, interrors.ErrInvalidTheme),
		errors.Is(err, interrors.ErrInvalidTextSize):
		s.writeError(w, http.StatusBadRequest, err)
	default:
		logger.Error("Request failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *APIServer) parseIDParam(r *http.Request) (int64, error) {
	str, exists := mux.Vars(r)["id"]
	if !exists {
		return 0, fmt.Errorf("missing parameter: id")
	}
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", interrors.ErrInvalidNoteID, str)
	}
	return id, nil
}

// Handlers

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   s.version,
	}

	if err := s.db.Ping(); err != nil {
		health["status"] = "unhealthy"
		health["database_error"] = err.Error()
		s.writeJSON(w, http.StatusServiceUnavailable, health)
		return
	}

	if count, err := s.repo.Count(); err == nil {
		health["notes"] = count
	}
	if s.cfg != nil {
		health["database"] = s.cfg.GetDatabasePath()
	}

	s.writeJSON(w, http.StatusOK, health)
}

func (s *APIServer) handleListNotes(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	filter := query.NewFilter(params.Get("q"), query.ParseCategory(params.Get("category")))

	notes, err := query.Notes(s.repo, filter)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ListNotesResponse{
		Notes:    notes,
		Count:    len(notes),
		Filtered: filter.Active(),
		Query:    filter.Text(),
		Category: filter.Category().String(),
	})
}

func (s *APIServer) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	note, err := s.repo.GetByID(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, note)
}

func (s *APIServer) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.NoteFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	id, err := s.repo.Insert(req)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	note, err := s.repo.GetByID(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	logger.Debug("Created note %d via API", id)
	s.writeJSON(w, http.StatusCreated, note)
}

func (s *APIServer) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req models.NoteFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	if err := s.repo.Update(id, req); err != nil {
		s.writeStoreError(w, err)
		return
	}

	note, err := s.repo.GetByID(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, note)
}

func (s *APIServer) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.repo.Delete(id); err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

func (s *APIServer) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	pinned, err := s.repo.TogglePin(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, PinResponse{ID: id, Pinned: pinned})
}

// handleExportNote streams the export text as a download instead of
// writing it on the server.
func (s *APIServer) handleExportNote(w http.ResponseWriter, r *http.Request) {
	id, err := s.parseIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	note, err := s.repo.GetByID(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(time.Now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.Render(*note))); err != nil {
		logger.Error("Failed to write export for note %d: %v", id, err)
	}
}

func (s *APIServer) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.repo.Categories()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *APIServer) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.prefs.LoadUI())
}

func (s *APIServer) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	ui := s.prefs.LoadUI()
	if req.Theme != "" {
		dark, err := preferences.ParseTheme(req.Theme)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		ui.DarkTheme = dark
	}
	if req.TextSize != "" {
		size, err := preferences.ParseTextSize(req.TextSize)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		ui.TextSize = size
	}

	if err := s.prefs.SaveUI(ui); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ui)
}
