// Package api implements the REST handlers served under /api.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaharia-lab/todo/internal/service"
	"github.com/shaharia-lab/todo/internal/shell"
)

// maxRequestBody caps JSON request bodies.
const maxRequestBody = 64 << 10

// Server holds all dependencies for the REST API handlers.
type Server struct {
	todoSvc service.TodoService
	sh      *shell.Shell
	logger  *slog.Logger
}

// New creates a new API Server. /config reports the mode and base URL of sh,
// the same shell that renders the page.
func New(todoSvc service.TodoService, sh *shell.Shell, logger *slog.Logger) *Server {
	return &Server{todoSvc: todoSvc, sh: sh, logger: logger}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	r.Get("/todos", s.handleListTodos)
	r.Post("/todos", s.handleCreateTodo)
	r.Patch("/todos/{id}", s.handleCompleteTodo)
	r.Delete("/todos/{id}", s.handleDeleteTodo)

	r.Get("/config", s.handleConfig)
	r.Get("/version", s.handleVersion)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, shell.BootConfig{
		BaseURL: s.sh.BaseURL(),
		Mode:    s.sh.Mode().String(),
	})
}

// writeServiceError maps service errors onto HTTP status codes. Unknown
// errors are logged and reported as 500 with fallback as the message.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, fallback string, attrs ...any) {
	var ve *service.ValidationError
	var ie *service.InvalidIDError
	var nfe *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, "invalid id")
	case errors.As(err, &nfe):
		writeError(w, http.StatusNotFound, "todo not found")
	default:
		s.logger.Error(fallback, append(attrs, "error", err)...)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
