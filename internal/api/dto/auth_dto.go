package dto

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserRole string `json:"userRole" validate:"required"`
}

// SigninRequest payload for login.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the credential clients send back in Authorization.
type AuthResponse struct {
	BearerToken string `json:"bearerToken"`
}
