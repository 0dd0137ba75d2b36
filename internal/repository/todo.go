package repository

import (
	"context"

	"todo-server/internal/domain"
)

// TodoRepository defines persistence operations for Todo entities.
// Every operation is scoped to an owner: records belonging to other
// owners are invisible and yield ErrNotFound.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) error
	Get(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	// ListByOwner returns the owner's todos ordered newest-first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Update(ctx context.Context, ownerID, id string, update domain.TodoUpdate) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}
