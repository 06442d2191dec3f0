package auth

import (
	"github.com/fitgear/storefront-backend/internal/users"
	"github.com/google/uuid"
)

// SignupRequest carries the fields for account creation.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// SigninRequest carries the credential pair.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordRequest consumes a reset token and sets a new password.
type ResetPasswordRequest struct {
	ResetToken      string `json:"resetToken" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdatePermissionsRequest replaces a user's permission set.
type UpdatePermissionsRequest struct {
	UserID      uuid.UUID `json:"userId" validate:"required"`
	Permissions []string  `json:"permissions" validate:"required"`
}

// Session is the result of any operation that signs the caller in.
type Session struct {
	Token string
	User  *users.UserDTO
}
