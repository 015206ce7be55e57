package domain

import "time"

// Comment is a note left on a todo.
type Comment struct {
	ID         int64
	Contents   string
	TodoID     int64
	Author     User
	CreatedAt  time.Time
	ModifiedAt time.Time
}
