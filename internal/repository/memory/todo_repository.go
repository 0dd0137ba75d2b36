package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

type todoRecord struct {
	todo domain.Todo
	seq  uint64
}

type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string]*todoRecord
	seq   uint64
}

func NewTodoRepository() repository.TodoRepository {
	return &TodoRepository{
		todos: make(map[string]*todoRecord),
	}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	r.seq++
	r.todos[todo.ID] = &todoRecord{todo: *todo, seq: r.seq}
	return nil
}

func (r *TodoRepository) Get(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.todos[id]
	if !ok || rec.todo.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := rec.todo
	return &copied, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*todoRecord, 0)
	for _, rec := range r.todos {
		if rec.todo.OwnerID == ownerID {
			records = append(records, rec)
		}
	}

	// newest first; insertion sequence breaks created_at ties
	sort.Slice(records, func(i, j int) bool {
		if records[i].todo.CreatedAt.Equal(records[j].todo.CreatedAt) {
			return records[i].seq > records[j].seq
		}
		return records[i].todo.CreatedAt.After(records[j].todo.CreatedAt)
	})

	todos := make([]domain.Todo, len(records))
	for i, rec := range records {
		todos[i] = rec.todo
	}
	return todos, nil
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id string, update domain.TodoUpdate) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.todos[id]
	if !ok || rec.todo.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}

	if update.Text != nil {
		rec.todo.Text = *update.Text
	}
	if update.Completed != nil {
		rec.todo.Completed = *update.Completed
	}
	rec.todo.UpdatedAt = time.Now().UTC()

	copied := rec.todo
	return &copied, nil
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.todos[id]
	if !ok || rec.todo.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}
