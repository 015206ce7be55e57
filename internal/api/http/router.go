package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/http/bind"
	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/audit"
	"github.com/spec-kit/todo-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Policy   auth.RoutePolicy
	Gate     *auth.Gate
	Recorder *audit.Recorder
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Todos    *handlers.TodosHandler
	Comments *handlers.CommentsHandler
	Managers *handlers.ManagersHandler
	Admin    *handlers.AdminHandler
}

// RegisterRoutes installs the gate in front of every API route and wires the
// handlers. Admin mutations are wrapped with the audit recorder. Input layouts
// are checked here, so a miswired handler panics at startup.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	authGroup := app.Group(cfg.Policy.ExemptPrefix)
	authGroup.Post("/signup", bind.MustHandler(http.StatusCreated, cfg.Auth.Signup))
	authGroup.Post("/signin", bind.OK(cfg.Auth.Signin))

	app.Get("/users/:userId", bind.OK(cfg.Users.GetUser))
	app.Put("/users", bind.MustHandler(http.StatusNoContent, cfg.Users.ChangePassword))

	todos := app.Group("/todos")
	todos.Post("/", bind.MustHandler(http.StatusCreated, cfg.Todos.SaveTodo))
	todos.Get("/", bind.OK(cfg.Todos.ListTodos))
	todos.Get("/:todoId", bind.OK(cfg.Todos.GetTodo))
	todos.Post("/:todoId/comments", bind.MustHandler(http.StatusCreated, cfg.Comments.SaveComment))
	todos.Get("/:todoId/comments", bind.OK(cfg.Comments.ListComments))
	todos.Post("/:todoId/managers", bind.MustHandler(http.StatusCreated, cfg.Managers.SaveManager))
	todos.Get("/:todoId/managers", bind.OK(cfg.Managers.ListManagers))
	todos.Delete("/:todoId/managers/:managerId", bind.MustHandler(http.StatusNoContent, cfg.Managers.DeleteManager))

	admin := app.Group(cfg.Policy.AdminPrefix)
	admin.Patch("/users/:userId", bind.OK(
		audit.Wrap(cfg.Recorder, "AdminHandler.ChangeUserRole", cfg.Admin.ChangeUserRole)))
	admin.Delete("/comments/:commentId", bind.MustHandler(http.StatusNoContent,
		audit.Wrap(cfg.Recorder, "AdminHandler.DeleteComment", cfg.Admin.DeleteComment)))
	admin.Get("/audit", bind.OK(cfg.Admin.AuditTrail))
}

// RegisterProbeRoutes wires health and metrics endpoints on the probe app,
// which listens on its own port outside the gate.
func RegisterProbeRoutes(app *fiber.App, health *handlers.HealthHandler) {
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	app.Get("/health/metrics", health.Metrics)
}
