// Package service implements the business logic layer between HTTP handlers
// and storage. All interfaces are designed for easy mocking in tests.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaharia-lab/todo/internal/storage"
)

// TodoService defines the business logic interface for managing todos.
type TodoService interface {
	// List returns all todos, oldest first. The slice is never nil.
	List(ctx context.Context) ([]*storage.Todo, error)

	// Create validates body and persists a new open todo.
	Create(ctx context.Context, body string) (*storage.Todo, error)

	// Complete marks a todo as done.
	Complete(ctx context.Context, id string) error

	// Delete removes a todo.
	Delete(ctx context.Context, id string) error

	// PurgeCompleted removes todos completed more than olderThan ago.
	PurgeCompleted(ctx context.Context, olderThan time.Duration) (int64, error)
}

type todoService struct {
	repo   storage.TodoStore
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

// NewTodoService returns a TodoService backed by the given store. events may be nil.
func NewTodoService(repo storage.TodoStore, events EventPublisher, logger *slog.Logger) TodoService {
	if events == nil {
		events = nopPublisher{}
	}
	return &todoService{repo: repo, events: events, logger: logger, now: time.Now}
}

func (s *todoService) List(ctx context.Context) ([]*storage.Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	if todos == nil {
		todos = []*storage.Todo{}
	}
	return todos, nil
}

func (s *todoService) Create(ctx context.Context, body string) (*storage.Todo, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &ValidationError{Field: "body", Message: "todo body cannot be empty"}
	}

	todo := &storage.Todo{Body: body}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("saving todo: %w", err)
	}

	s.logger.Info("todo created", "id", todo.ID)
	s.events.Publish(EventTodoCreated, map[string]string{"id": todo.ID})
	return todo, nil
}

func (s *todoService) Complete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.MarkCompleted(ctx, id); err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			return &NotFoundError{Resource: "todo", ID: id}
		}
		return fmt.Errorf("completing todo %q: %w", id, err)
	}

	s.logger.Info("todo completed", "id", id)
	s.events.Publish(EventTodoCompleted, map[string]string{"id": id})
	return nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			return &NotFoundError{Resource: "todo", ID: id}
		}
		return fmt.Errorf("deleting todo %q: %w", id, err)
	}

	s.logger.Info("todo deleted", "id", id)
	s.events.Publish(EventTodoDeleted, map[string]string{"id": id})
	return nil
}

func (s *todoService) PurgeCompleted(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, &ValidationError{Field: "older_than", Message: "retention must be positive"}
	}
	n, err := s.repo.DeleteCompletedBefore(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("purging completed todos: %w", err)
	}
	if n > 0 {
		s.logger.Info("purged completed todos", "count", n, "older_than", olderThan.String())
		s.events.Publish(EventTodoPurged, map[string]string{"count": strconv.FormatInt(n, 10)})
	}
	return n, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &InvalidIDError{ID: id}
	}
	return nil
}
