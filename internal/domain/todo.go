package domain

import "time"

// Todo is a task created by a user. Owner is nil when the owning account is gone.
type Todo struct {
	ID         int64
	Title      string
	Contents   string
	Owner      *User
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// OwnedBy reports whether userID created the todo.
func (t *Todo) OwnedBy(userID int64) bool {
	return t.Owner != nil && t.Owner.ID == userID
}
