package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/todo-service/internal/domain"
)

// TodoRepository defines persistence access for todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.Todo, int64, error)
}

type todoRepository struct {
	pool *pgxpool.Pool
}

// NewTodoRepository returns a Postgres-backed implementation.
func NewTodoRepository(pool *pgxpool.Pool) TodoRepository {
	return &todoRepository{pool: pool}
}

const todoSelect = `
        SELECT t.id, t.title, t.contents, t.created_at, t.modified_at,
               u.id, u.email
        FROM todos t
        LEFT JOIN users u ON u.id = t.user_id`

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	const query = `
        INSERT INTO todos (title, contents, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, modified_at`

	var ownerID *int64
	if todo.Owner != nil {
		ownerID = &todo.Owner.ID
	}
	return r.pool.QueryRow(ctx, query, todo.Title, todo.Contents, ownerID).
		Scan(&todo.ID, &todo.CreatedAt, &todo.ModifiedAt)
}

func (r *todoRepository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	return scanTodo(r.pool.QueryRow(ctx, todoSelect+` WHERE t.id=$1`, id))
}

func (r *todoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM todos WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *todoRepository) List(ctx context.Context, limit, offset int) ([]domain.Todo, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, todoSelect+` ORDER BY t.modified_at DESC, t.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, 0, err
		}
		todos = append(todos, *todo)
	}
	return todos, total, rows.Err()
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var (
		todo       domain.Todo
		ownerID    *int64
		ownerEmail *string
	)
	if err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Contents,
		&todo.CreatedAt,
		&todo.ModifiedAt,
		&ownerID,
		&ownerEmail,
	); err != nil {
		return nil, err
	}
	if ownerID != nil {
		todo.Owner = &domain.User{ID: *ownerID}
		if ownerEmail != nil {
			todo.Owner.Email = *ownerEmail
		}
	}
	return &todo, nil
}
