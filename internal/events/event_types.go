package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/todo-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRoleChanged EventType = "user_role_changed"
	EventManagerAssigned EventType = "manager_assigned"
	EventManagerRemoved  EventType = "manager_removed"
	EventCommentDeleted  EventType = "comment_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a fresh id and the current time.
func NewEvent(eventType EventType, actorID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  int64           `json:"user_id"`
	OldRole domain.UserRole `json:"old_role"`
	NewRole domain.UserRole `json:"new_role"`
}

// ManagerAssignedPayload payload.
type ManagerAssignedPayload struct {
	TodoID        int64 `json:"todo_id"`
	ManagerID     int64 `json:"manager_id"`
	ManagerUserID int64 `json:"manager_user_id"`
}

// ManagerRemovedPayload payload.
type ManagerRemovedPayload struct {
	TodoID    int64 `json:"todo_id"`
	ManagerID int64 `json:"manager_id"`
}

// CommentDeletedPayload payload.
type CommentDeletedPayload struct {
	CommentID int64 `json:"comment_id"`
}
