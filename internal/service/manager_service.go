package service

import (
	"context"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// Manager rule violations.
const (
	MsgTodoWithoutOwner     = "todo has no owner"
	MsgOnlyOwnerAssigns     = "only the todo owner can assign managers"
	MsgManagerUserNotFound  = "manager user not found"
	MsgOwnerSelfAssignment  = "todo owner cannot assign themselves as manager"
	MsgOwnerNotValid        = "caller is not the owner of this todo"
	MsgManagerNotOnThisTodo = "manager is not assigned to this todo"
)

// ManagerService assigns users to look after todos.
type ManagerService struct {
	managers   repository.ManagerRepository
	users      *UserReader
	todos      *TodoReader
	dispatcher events.Dispatcher
}

// NewManagerService builds the service. dispatcher may be nil.
func NewManagerService(
	managers repository.ManagerRepository,
	users repository.UserRepository,
	todos repository.TodoRepository,
	dispatcher events.Dispatcher,
) *ManagerService {
	return &ManagerService{
		managers:   managers,
		users:      NewUserReader(users),
		todos:      NewTodoReader(todos),
		dispatcher: dispatcher,
	}
}

// SaveManager makes managerUserID a manager of todoID. Only the todo owner may
// assign, and not to themselves.
func (s *ManagerService) SaveManager(ctx context.Context, callerID, todoID, managerUserID int64) (*domain.Manager, error) {
	todo, err := s.todos.Get(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.Owner == nil {
		return nil, errorutil.NewInvalidRequest(MsgTodoWithoutOwner)
	}
	if !todo.OwnedBy(callerID) {
		return nil, errorutil.NewInvalidRequest(MsgOnlyOwnerAssigns)
	}

	managerUser, err := s.users.GetOr(ctx, managerUserID, MsgManagerUserNotFound)
	if err != nil {
		return nil, err
	}
	if managerUser.ID == todo.Owner.ID {
		return nil, errorutil.NewInvalidRequest(MsgOwnerSelfAssignment)
	}

	manager := &domain.Manager{TodoID: todo.ID, User: *managerUser}
	if err := s.managers.Create(ctx, manager); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventManagerAssigned, callerID, events.ManagerAssignedPayload{
			TodoID:        todo.ID,
			ManagerID:     manager.ID,
			ManagerUserID: managerUser.ID,
		}))
	}
	return manager, nil
}

// GetManagers lists the managers of todoID.
func (s *ManagerService) GetManagers(ctx context.Context, todoID int64) ([]domain.Manager, error) {
	if err := s.todos.MustExist(ctx, todoID); err != nil {
		return nil, err
	}
	return s.managers.ListByTodo(ctx, todoID)
}

// DeleteManager removes managerID from todoID. Only the todo owner may remove.
func (s *ManagerService) DeleteManager(ctx context.Context, callerID, todoID, managerID int64) error {
	todo, err := s.todos.Get(ctx, todoID)
	if err != nil {
		return err
	}
	if !todo.OwnedBy(callerID) {
		return errorutil.NewInvalidRequest(MsgOwnerNotValid)
	}

	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		if isNoRows(err) {
			return errorutil.NewInvalidRequest(MsgManagerNotFound)
		}
		return err
	}
	if manager.TodoID != todo.ID {
		return errorutil.NewInvalidRequest(MsgManagerNotOnThisTodo)
	}

	if err := s.managers.Delete(ctx, manager.ID); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventManagerRemoved, callerID,
			events.ManagerRemovedPayload{TodoID: todo.ID, ManagerID: manager.ID}))
	}
	return nil
}
