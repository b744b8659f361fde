package dto

// RegisterRequest creates a new member account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=2"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the bearer token and the authenticated profile.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int           `json:"expires_in"`
	User      *UserResponse `json:"user"`
}
