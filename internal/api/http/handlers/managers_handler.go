package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/api/http/bind"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/service"
)

// ManagersHandler exposes manager assignment endpoints nested under a todo.
type ManagersHandler struct {
	managers *service.ManagerService
}

// NewManagersHandler constructs handler.
func NewManagersHandler(managers *service.ManagerService) *ManagersHandler {
	return &ManagersHandler{managers: managers}
}

// SaveManagerInput is decoded for POST /todos/:todoId/managers.
type SaveManagerInput struct {
	Caller auth.Identity          `bind:"identity"`
	Path   dto.TodoPath           `bind:"params"`
	Body   dto.ManagerSaveRequest `bind:"body"`
}

// SaveManager handles POST /todos/:todoId/managers.
func (h *ManagersHandler) SaveManager(c *fiber.Ctx, in *SaveManagerInput) (dto.ManagerResponse, error) {
	m, err := h.managers.SaveManager(c.UserContext(), in.Caller.UserID, in.Path.TodoID, in.Body.ManagerUserID)
	if err != nil {
		return dto.ManagerResponse{}, err
	}
	return dto.NewManagerResponse(*m), nil
}

// ListManagersInput is decoded for GET /todos/:todoId/managers.
type ListManagersInput struct {
	Path dto.TodoPath `bind:"params"`
}

// ListManagers handles GET /todos/:todoId/managers.
func (h *ManagersHandler) ListManagers(c *fiber.Ctx, in *ListManagersInput) ([]dto.ManagerResponse, error) {
	managers, err := h.managers.GetManagers(c.UserContext(), in.Path.TodoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ManagerResponse, 0, len(managers))
	for _, m := range managers {
		out = append(out, dto.NewManagerResponse(m))
	}
	return out, nil
}

// DeleteManagerInput is decoded for DELETE /todos/:todoId/managers/:managerId.
type DeleteManagerInput struct {
	Caller auth.Identity   `bind:"identity"`
	Path   dto.ManagerPath `bind:"params"`
}

// DeleteManager handles DELETE /todos/:todoId/managers/:managerId.
func (h *ManagersHandler) DeleteManager(c *fiber.Ctx, in *DeleteManagerInput) (bind.Empty, error) {
	return bind.Empty{}, h.managers.DeleteManager(c.UserContext(), in.Caller.UserID, in.Path.TodoID, in.Path.ManagerID)
}
