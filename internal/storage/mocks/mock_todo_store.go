package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/todo/internal/storage"
)

// MockTodoStore is a mock implementation of storage.TodoStore.
type MockTodoStore struct {
	mock.Mock
}

//nolint:revive
func (m *MockTodoStore) List(ctx context.Context) ([]*storage.Todo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Todo), args.Error(1)
}

//nolint:revive
func (m *MockTodoStore) Get(ctx context.Context, id string) (*storage.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Todo), args.Error(1)
}

//nolint:revive
func (m *MockTodoStore) Create(ctx context.Context, todo *storage.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

//nolint:revive
func (m *MockTodoStore) MarkCompleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

//nolint:revive
func (m *MockTodoStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

//nolint:revive
func (m *MockTodoStore) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
