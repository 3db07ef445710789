package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLiteTodoStore implements TodoStore backed by a SQLite database.
type SQLiteTodoStore struct {
	db *sql.DB
}

// NewSQLiteTodoStore returns a new SQLiteTodoStore.
func NewSQLiteTodoStore(db *sql.DB) *SQLiteTodoStore {
	return &SQLiteTodoStore{db: db}
}

const todoColumns = `id, body, completed, created_at, updated_at, completed_at`

// List returns all todos ordered by creation time.
func (s *SQLiteTodoStore) List(ctx context.Context) ([]*Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	todos := make([]*Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// Get returns a todo by ID, or nil if not found.
func (s *SQLiteTodoStore) Get(ctx context.Context, id string) (*Todo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %q: %w", id, err)
	}
	return t, nil
}

// Create inserts a new todo.
func (s *SQLiteTodoStore) Create(ctx context.Context, todo *Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	todo.UpdatedAt = now
	if todo.Completed && todo.CompletedAt == nil {
		todo.CompletedAt = &now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (`+todoColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Body, todo.Completed, todo.CreatedAt, todo.UpdatedAt, todo.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// MarkCompleted sets completed on a todo. The completion time of an
// already completed todo is preserved.
func (s *SQLiteTodoStore) MarkCompleted(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			updated_at = CASE WHEN completed = 1 THEN updated_at ELSE ? END,
			completed_at = COALESCE(completed_at, ?),
			completed = 1
		WHERE id = ?`, now, now, id)
	if err != nil {
		return fmt.Errorf("completing todo %q: %w", id, err)
	}
	return expectOneRow(res, id)
}

// Delete removes a todo by ID.
func (s *SQLiteTodoStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %q: %w", id, err)
	}
	return expectOneRow(res, id)
}

// DeleteCompletedBefore removes completed todos whose completion time is
// older than cutoff.
func (s *SQLiteTodoStore) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM todos WHERE completed = 1 AND completed_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purging completed todos: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for todo %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("todo %q: %w", id, ErrTodoNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(r rowScanner) (*Todo, error) {
	t := &Todo{}
	var completedAt sql.NullTime
	if err := r.Scan(&t.ID, &t.Body, &t.Completed, &t.CreatedAt, &t.UpdatedAt, &completedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}
	return t, nil
}
