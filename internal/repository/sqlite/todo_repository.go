package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	text TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const createTodosOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_todos_owner_created ON todos (owner_id, created_at DESC);
`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTodosOwnerIndex); err != nil {
		return fmt.Errorf("create todos index: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO todos (id, owner_id, text, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID,
		todo.OwnerID,
		todo.Text,
		todo.Completed,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Get(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, text, completed, created_at, updated_at
FROM todos
WHERE id = ? AND owner_id = ?`,
		id,
		ownerID,
	)
	return scanTodo(row)
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, text, completed, created_at, updated_at
FROM todos
WHERE owner_id = ?
ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.OwnerID,
			&todo.Text,
			&todo.Completed,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id string, update domain.TodoUpdate) (*domain.Todo, error) {
	sets := "updated_at = ?"
	args := []any{time.Now().UTC()}
	if update.Text != nil {
		sets += ", text = ?"
		args = append(args, *update.Text)
	}
	if update.Completed != nil {
		sets += ", completed = ?"
		args = append(args, *update.Completed)
	}
	args = append(args, id, ownerID)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE todos SET %s WHERE id = ? AND owner_id = ?`, sets),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update todo rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.Get(ctx, ownerID, id)
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM todos WHERE id = ? AND owner_id = ?`,
		id,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTodo(row *sql.Row) (*domain.Todo, error) {
	var todo domain.Todo
	if err := row.Scan(
		&todo.ID,
		&todo.OwnerID,
		&todo.Text,
		&todo.Completed,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &todo, nil
}
