package users

import "github.com/fieldopshq/fieldops-backend/pkg/db/models"

// UserDTO is the API representation of an account. Password material never
// leaves the service layer.
type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UpdateUserInput captures the mutable account fields. Nil fields are left
// untouched.
type UpdateUserInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// FromModel maps a stored user to its DTO.
func FromModel(record *models.User) *UserDTO {
	if record == nil {
		return nil
	}
	return &UserDTO{
		ID:       record.ID,
		Username: record.Username,
		IsAdmin:  record.IsAdmin,
	}
}
