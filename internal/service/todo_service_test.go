package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
	"todo-server/internal/repository/memory"
)

func newTodoService() TodoService {
	return NewTodoService(memory.NewTodoRepository(), 0)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTrimsText(t *testing.T) {
	svc := newTodoService()

	todo, err := svc.Create(context.Background(), "owner-1", "  buy milk  ")
	require.NoError(t, err)

	assert.Equal(t, "buy milk", todo.Text)
	assert.False(t, todo.Completed)
	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "owner-1", todo.OwnerID)
}

func TestCreateRejectsInvalidText(t *testing.T) {
	svc := newTodoService()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "   "},
		{name: "too long", text: strings.Repeat("a", 501)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-1", tt.text)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc := newTodoService()

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), "owner-1", text)
		require.NoError(t, err)
	}

	todos, err := svc.List(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, todos, 3)

	assert.Equal(t, "third", todos[0].Text)
	assert.Equal(t, "second", todos[1].Text)
	assert.Equal(t, "first", todos[2].Text)
}

func TestListEmptyIsNotAnError(t *testing.T) {
	svc := newTodoService()

	todos, err := svc.List(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestPartialUpdate(t *testing.T) {
	svc := newTodoService()

	created, err := svc.Create(context.Background(), "owner-1", "original")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "owner-1", created.ID, domain.TodoUpdate{
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Text, "text must survive a completed-only update")
	assert.True(t, updated.Completed)

	updated, err = svc.Update(context.Background(), "owner-1", created.ID, domain.TodoUpdate{
		Text: strPtr("  new text  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "new text", updated.Text)
	assert.True(t, updated.Completed, "completed must survive a text-only update")
}

func TestUpdateRejectsEmptyText(t *testing.T) {
	svc := newTodoService()

	created, err := svc.Create(context.Background(), "owner-1", "original")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "owner-1", created.ID, domain.TodoUpdate{
		Text: strPtr("   "),
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCrossOwnerAccessLooksLikeNotFound(t *testing.T) {
	svc := newTodoService()

	created, err := svc.Create(context.Background(), "owner-1", "private")
	require.NoError(t, err)

	todos, err := svc.List(context.Background(), "owner-2")
	require.NoError(t, err)
	assert.Empty(t, todos)

	_, err = svc.Update(context.Background(), "owner-2", created.ID, domain.TodoUpdate{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.Delete(context.Background(), "owner-2", created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// the owner still sees an untouched item
	todos, err = svc.List(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Completed)
}

func TestDelete(t *testing.T) {
	svc := newTodoService()

	created, err := svc.Create(context.Background(), "owner-1", "to delete")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "owner-1", created.ID))

	err = svc.Delete(context.Background(), "owner-1", created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	todos, err := svc.List(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, todos)
}
