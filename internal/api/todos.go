package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createTodoRequest struct {
	Body string `json:"body"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todoSvc.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to list todos")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	todo, err := s.todoSvc.Create(r.Context(), req.Body)
	if err != nil {
		s.writeServiceError(w, err, "failed to create todo")
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleCompleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.todoSvc.Complete(r.Context(), id); err != nil {
		s.writeServiceError(w, err, "failed to update todo", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.todoSvc.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, err, "failed to delete todo", "id", id)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
