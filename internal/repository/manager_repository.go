package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/todo-service/internal/domain"
)

// ManagerRepository defines persistence access for todo manager assignments.
type ManagerRepository interface {
	Create(ctx context.Context, manager *domain.Manager) error
	GetByID(ctx context.Context, id int64) (*domain.Manager, error)
	ListByTodo(ctx context.Context, todoID int64) ([]domain.Manager, error)
	Delete(ctx context.Context, id int64) error
}

type managerRepository struct {
	pool *pgxpool.Pool
}

// NewManagerRepository returns a Postgres-backed implementation.
func NewManagerRepository(pool *pgxpool.Pool) ManagerRepository {
	return &managerRepository{pool: pool}
}

const managerSelect = `
        SELECT m.id, m.todo_id, u.id, u.email
        FROM managers m
        JOIN users u ON u.id = m.user_id`

func (r *managerRepository) Create(ctx context.Context, manager *domain.Manager) error {
	const query = `
        INSERT INTO managers (todo_id, user_id)
        VALUES ($1, $2)
        RETURNING id`

	return r.pool.QueryRow(ctx, query, manager.TodoID, manager.User.ID).Scan(&manager.ID)
}

func (r *managerRepository) GetByID(ctx context.Context, id int64) (*domain.Manager, error) {
	return scanManager(r.pool.QueryRow(ctx, managerSelect+` WHERE m.id=$1`, id))
}

func (r *managerRepository) ListByTodo(ctx context.Context, todoID int64) ([]domain.Manager, error) {
	rows, err := r.pool.Query(ctx, managerSelect+` WHERE m.todo_id=$1 ORDER BY m.id ASC`, todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []domain.Manager
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		managers = append(managers, *m)
	}
	return managers, rows.Err()
}

func (r *managerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM managers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanManager(row pgx.Row) (*domain.Manager, error) {
	var m domain.Manager
	if err := row.Scan(&m.ID, &m.TodoID, &m.User.ID, &m.User.Email); err != nil {
		return nil, err
	}
	return &m, nil
}
