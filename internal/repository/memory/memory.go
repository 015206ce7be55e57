// Package memory provides process-local repositories. They back the service
// when no Postgres DSN is configured and serve as fakes in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
)

var (
	_ repository.UserRepository    = (*Users)(nil)
	_ repository.TodoRepository    = (*Todos)(nil)
	_ repository.CommentRepository = (*Comments)(nil)
	_ repository.ManagerRepository = (*Managers)(nil)
)

// Users is an in-memory UserRepository.
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
}

// NewUsers seeds the repository with users.
func NewUsers(users ...domain.User) *Users {
	r := &Users{byID: map[int64]domain.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
		r.nextID = max(r.nextID, u.ID)
	}
	return r
}

func (r *Users) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.ModifiedAt = user.CreatedAt
	r.byID[user.ID] = *user
	return nil
}

func (r *Users) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.ModifiedAt = time.Now()
	r.byID[user.ID] = *user
	return nil
}

func (r *Users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

// Todos is an in-memory TodoRepository. Owners are stored by value, so an
// owner's later email change is not reflected.
type Todos struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Todo
	now    func() time.Time
}

// NewTodos seeds the repository with todos.
func NewTodos(todos ...domain.Todo) *Todos {
	r := &Todos{byID: map[int64]domain.Todo{}, now: time.Now}
	for _, t := range todos {
		r.byID[t.ID] = t
		r.nextID = max(r.nextID, t.ID)
	}
	return r
}

func (r *Todos) Create(_ context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	todo.ID = r.nextID
	todo.CreatedAt = r.now()
	todo.ModifiedAt = todo.CreatedAt
	r.byID[todo.ID] = *todo
	return nil
}

func (r *Todos) GetByID(_ context.Context, id int64) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (r *Todos) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok, nil
}

// List orders by modification time then id, both descending.
func (r *Todos) List(_ context.Context, limit, offset int) ([]domain.Todo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Todo, 0, len(r.byID))
	for _, t := range r.byID {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].ModifiedAt.Equal(all[j].ModifiedAt) {
			return all[i].ModifiedAt.After(all[j].ModifiedAt)
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	offset = max(offset, 0)
	if offset >= len(all) || limit <= 0 {
		return nil, total, nil
	}
	end := offset + min(limit, len(all)-offset)
	return all[offset:end], total, nil
}

// Comments is an in-memory CommentRepository.
type Comments struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.Comment
}

// NewComments returns an empty repository.
func NewComments() *Comments {
	return &Comments{}
}

func (r *Comments) Create(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.ModifiedAt = c.CreatedAt
	r.items = append(r.items, *c)
	return nil
}

func (r *Comments) ListByTodo(_ context.Context, todoID int64) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Comment
	for _, c := range r.items {
		if c.TodoID == todoID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *Comments) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.items {
		if c.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// Managers is an in-memory ManagerRepository.
type Managers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Manager
}

// NewManagers seeds the repository with assignments.
func NewManagers(managers ...domain.Manager) *Managers {
	r := &Managers{byID: map[int64]domain.Manager{}}
	for _, m := range managers {
		r.byID[m.ID] = m
		r.nextID = max(r.nextID, m.ID)
	}
	return r
}

func (r *Managers) Create(_ context.Context, m *domain.Manager) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	r.byID[m.ID] = *m
	return nil
}

func (r *Managers) GetByID(_ context.Context, id int64) (*domain.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (r *Managers) ListByTodo(_ context.Context, todoID int64) ([]domain.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Manager
	for _, m := range r.byID {
		if m.TodoID == todoID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Managers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}
