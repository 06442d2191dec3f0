package users

import (
	"time"

	"github.com/fitgear/storefront-backend/pkg/db/models"
	"github.com/fitgear/storefront-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateUserDTO carries the fields needed to insert a new user row.
type CreateUserDTO struct {
	Email        string
	Name         string
	PasswordHash string
	Permissions  []enums.Permission
}

// ToModel maps the DTO onto a fresh user model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Permissions:  enums.Strings(d.Permissions),
	}
}

// UserDTO is the outward-facing user shape. The password hash and reset
// fields never leave the service layer.
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromModel converts a persisted user into its public DTO.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	perms := make([]string, len(user.Permissions))
	copy(perms, user.Permissions)
	return &UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Permissions: perms,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
