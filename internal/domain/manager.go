package domain

// Manager assigns a user to look after a todo.
type Manager struct {
	ID     int64
	TodoID int64
	User   User
}
