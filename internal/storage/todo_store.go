package storage

import (
	"context"
	"errors"
	"time"
)

// ErrTodoNotFound is returned by mutations that target a missing todo.
var ErrTodoNotFound = errors.New("todo not found")

// Todo is a single to-do item. The JSON field names match what the client
// bundle expects.
type Todo struct {
	ID          string     `json:"_id"`
	Completed   bool       `json:"completed"`
	Body        string     `json:"body"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TodoStore defines persistence operations for todos.
type TodoStore interface {
	// List returns all todos, oldest first.
	List(ctx context.Context) ([]*Todo, error)

	// Get returns the todo with the given id, or nil if it does not exist.
	Get(ctx context.Context, id string) (*Todo, error)

	// Create inserts a todo, assigning ID and timestamps when unset.
	Create(ctx context.Context, todo *Todo) error

	// MarkCompleted flags a todo as done. Completing a done todo is a no-op.
	MarkCompleted(ctx context.Context, id string) error

	// Delete removes a todo.
	Delete(ctx context.Context, id string) error

	// DeleteCompletedBefore removes todos completed before cutoff and
	// returns how many were removed.
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
