package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/events"
)

// NotificationService reacts to domain events. Delivery channels are log lines for now.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRoleChanged, n.handleUserRoleChanged)
	n.dispatcher.Subscribe(events.EventManagerAssigned, n.handleManagerAssigned)
	n.dispatcher.Subscribe(events.EventManagerRemoved, n.handleManagerRemoved)
	n.dispatcher.Subscribe(events.EventCommentDeleted, n.handleCommentDeleted)
}

func (n *NotificationService) handleUserRoleChanged(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.UserRoleChangedPayload)
	n.logger.Info("UserRoleChanged",
		zap.String("event_id", event.ID),
		zap.Int64("actor_id", event.ActorID),
		zap.Int64("user_id", p.UserID),
		zap.String("old_role", string(p.OldRole)),
		zap.String("new_role", string(p.NewRole)))
	n.logger.Warn("issued credentials keep the previous role until they expire",
		zap.Int64("user_id", p.UserID),
		zap.String("old_role", string(p.OldRole)))
	return nil
}

func (n *NotificationService) handleManagerAssigned(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.ManagerAssignedPayload)
	n.logger.Info("ManagerAssigned",
		zap.String("event_id", event.ID),
		zap.Int64("todo_id", p.TodoID),
		zap.Int64("manager_user_id", p.ManagerUserID))
	return nil
}

func (n *NotificationService) handleManagerRemoved(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.ManagerRemovedPayload)
	n.logger.Info("ManagerRemoved",
		zap.String("event_id", event.ID),
		zap.Int64("todo_id", p.TodoID),
		zap.Int64("manager_id", p.ManagerID))
	return nil
}

func (n *NotificationService) handleCommentDeleted(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.CommentDeletedPayload)
	n.logger.Info("CommentDeleted",
		zap.String("event_id", event.ID),
		zap.Int64("actor_id", event.ActorID),
		zap.Int64("comment_id", p.CommentID))
	return nil
}
