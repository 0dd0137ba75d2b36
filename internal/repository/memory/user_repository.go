// Package memory provides transient, process-lifetime repository
// implementations used when the durable store is unavailable. Data is
// lost on restart and is not shared across process instances.
package memory

import (
	"context"
	"sync"
	"time"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func NewUserRepository() repository.UserRepository {
	return &UserRepository{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (r *UserRepository) Init(ctx context.Context) error {
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byEmail[stored.Email] = &stored
	r.byID[stored.ID] = &stored
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
