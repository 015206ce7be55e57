package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/todo-service/internal/domain"
)

// CommentRepository defines persistence access for todo comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTodo(ctx context.Context, todoID int64) ([]domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository returns a Postgres-backed implementation.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (contents, todo_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, modified_at`

	return r.pool.QueryRow(ctx, query, comment.Contents, comment.TodoID, comment.Author.ID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.ModifiedAt)
}

func (r *commentRepository) ListByTodo(ctx context.Context, todoID int64) ([]domain.Comment, error) {
	const query = `
        SELECT c.id, c.contents, c.todo_id, c.created_at, c.modified_at, u.id, u.email
        FROM comments c
        JOIN users u ON u.id = c.user_id
        WHERE c.todo_id=$1
        ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.pool.Query(ctx, query, todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Contents, &c.TodoID, &c.CreatedAt, &c.ModifiedAt, &c.Author.ID, &c.Author.Email); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
