package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

func TestUserRepositoryDuplicate(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "u@x.com", PasswordHash: "h"}))

	err := repo.Create(ctx, &domain.User{ID: "u2", Email: "u@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryReturnsCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "u1", Email: "u@x.com", PasswordHash: "h"}))

	first, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	first.Email = "mutated@x.com"

	second, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", second.Email)
}

func TestTodoRepositoryTieBreakOrdering(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	// created back to back; identical timestamps must not scramble order
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &domain.Todo{ID: id, OwnerID: "o1", Text: id}))
	}

	todos, err := repo.ListByOwner(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "c", todos[0].ID)
	assert.Equal(t, "b", todos[1].ID)
	assert.Equal(t, "a", todos[2].ID)
}

func TestTodoRepositoryOwnerScoping(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Todo{ID: "t1", OwnerID: "o1", Text: "private"}))

	_, err := repo.Get(ctx, "o2", "t1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	completed := true
	_, err = repo.Update(ctx, "o2", "t1", domain.TodoUpdate{Completed: &completed})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "o2", "t1"), repository.ErrNotFound)
}
