package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"fieldlens/internal/logging"
	"fieldlens/internal/report"
	"fieldlens/internal/results"
)

var allowedUpdateFields = map[string]struct{}{
	"status":      {},
	"task":        {},
	"description": {},
	"importance":  {},
}

// ServerOptions configure a review server.
type ServerOptions struct {
	Bind        string
	Store       *Store
	Results     *results.Store
	FilesRoot   string
	ReportTitle string
	Logger      *slog.Logger
}

// Server owns the review HTTP API. One instance per review data file; a
// second Start against the same file fails fast instead of fighting over
// writes.
type Server struct {
	bind        string
	store       *Store
	results     *results.Store
	filesRoot   string
	reportTitle string
	logger      *slog.Logger

	instance *flock.Flock
	listener net.Listener
	server   *http.Server
}

// NewServer builds a server around opts. The HTTP handler is wired here so
// tests can drive it without binding a socket.
func NewServer(opts ServerOptions) (*Server, error) {
	bind := strings.TrimSpace(opts.Bind)
	if bind == "" {
		return nil, errors.New("review server: bind address required")
	}
	if opts.Store == nil {
		return nil, errors.New("review server: store required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &Server{
		bind:        bind,
		store:       opts.Store,
		results:     opts.Results,
		filesRoot:   opts.FilesRoot,
		reportTitle: opts.ReportTitle,
		logger:      logging.NewComponentLogger(logger, "review-server"),
		instance:    flock.New(opts.Store.Path() + ".serve.lock"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/data", srv.handleData)
	mux.HandleFunc("/api/update", srv.handleUpdate)
	mux.HandleFunc("/export", srv.handleExport)
	mux.HandleFunc("/files/", srv.handleFiles)
	mux.HandleFunc("/healthz", srv.handleHealth)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start claims the single-instance lock, seeds the review file from the
// results store, and begins serving. The server shuts down when ctx ends.
func (s *Server) Start(ctx context.Context) error {
	locked, err := s.instance.TryLock()
	if err != nil {
		return fmt.Errorf("review server lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another review server is already serving %s", s.store.Path())
	}

	if added, err := s.bootstrap(); err != nil {
		_ = s.instance.Unlock()
		return err
	} else if added > 0 {
		s.logger.Info("seeded review entries", logging.Int("added", added))
	}

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		_ = s.instance.Unlock()
		return fmt.Errorf("review server listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("review server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("review server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and releases the instance lock.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	_ = s.instance.Unlock()
}

func (s *Server) bootstrap() (int, error) {
	if s.results == nil {
		return 0, nil
	}
	records, err := s.results.Load()
	if err != nil {
		return 0, fmt.Errorf("load analysis results: %w", err)
	}
	added, err := s.store.Bootstrap(records)
	if err != nil {
		return 0, fmt.Errorf("seed review entries: %w", err)
	}
	return added, nil
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if _, err := s.bootstrap(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	entries, err := s.store.Load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	id := strings.TrimSpace(payload["id"])
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "missing item id")
		return
	}
	updates := make(map[string]string)
	for field, value := range payload {
		if _, ok := allowedUpdateFields[field]; ok {
			updates[field] = value
		}
	}
	if len(updates) == 0 {
		s.writeError(w, http.StatusBadRequest, "no updates provided")
		return
	}

	entry, err := s.store.Update(id, updates)
	switch {
	case errors.Is(err, ErrNotFound):
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, ErrInvalidStatus):
		s.writeError(w, http.StatusBadRequest, "invalid status value")
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("entry updated",
		logging.String("id", id),
		logging.Int("fields", len(updates)),
	)
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "item": entry})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	approved, err := s.store.Approved()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	items := make([]report.Item, 0, len(approved))
	for _, entry := range approved {
		items = append(items, report.Item{
			Folder:      entry.Folder,
			Filename:    entry.Filename,
			ImagePath:   entry.ImagePath,
			Task:        entry.Task,
			Description: entry.Description,
			Importance:  entry.Importance,
		})
	}
	page, err := report.Render(items, report.Options{Title: s.reportTitle})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="inspection-report.html"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.filesRoot == "" {
		s.writeError(w, http.StatusNotFound, "file serving disabled")
		return
	}
	rel := strings.TrimPrefix(r.URL.Path, "/files/")
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		s.writeError(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, filepath.Join(s.filesRoot, cleaned))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
