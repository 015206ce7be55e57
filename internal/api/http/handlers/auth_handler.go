package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/service"
)

// AuthHandler exposes credential issuance endpoints. They sit under the exempt prefix.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignupInput is decoded for POST /auth/signup.
type SignupInput struct {
	Body dto.SignupRequest `bind:"body"`
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx, in *SignupInput) (dto.AuthResponse, error) {
	bearer, err := h.auth.Signup(c.UserContext(), in.Body.Email, in.Body.Password, in.Body.UserRole)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{BearerToken: bearer}, nil
}

// SigninInput is decoded for POST /auth/signin.
type SigninInput struct {
	Body dto.SigninRequest `bind:"body"`
}

// Signin handles POST /auth/signin.
func (h *AuthHandler) Signin(c *fiber.Ctx, in *SigninInput) (dto.AuthResponse, error) {
	bearer, err := h.auth.Signin(c.UserContext(), in.Body.Email, in.Body.Password)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{BearerToken: bearer}, nil
}
