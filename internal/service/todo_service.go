package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const maxTodoTextLength = 500

// TodoService coordinates todo operations. Every method requires the
// caller's owner id and operates only within that owner's partition.
type TodoService interface {
	List(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID, text string) (*domain.Todo, error)
	Update(ctx context.Context, ownerID, id string, update domain.TodoUpdate) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type todoService struct {
	todos   repository.TodoRepository
	timeout time.Duration
}

func NewTodoService(todos repository.TodoRepository, timeout time.Duration) TodoService {
	return &todoService{
		todos:   todos,
		timeout: timeout,
	}
}

func (s *todoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *todoService) Create(ctx context.Context, ownerID, text string) (*domain.Todo, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Text:      text,
		Completed: false,
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, ownerID, id string, update domain.TodoUpdate) (*domain.Todo, error) {
	if update.Text != nil {
		text, err := validateText(*update.Text)
		if err != nil {
			return nil, err
		}
		update.Text = &text
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.todos.Update(ctx, ownerID, id, update)
}

func (s *todoService) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.todos.Delete(ctx, ownerID, id)
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", newValidationError("Text is required and cannot be empty")
	}
	if len(text) > maxTodoTextLength {
		return "", newValidationError("Todo text cannot exceed 500 characters")
	}
	return text, nil
}
