package users

import (
	"time"

	"github.com/easemart/easemart-backend/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the transport shape. The logon key hash never leaves the service.
type UserDTO struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	FullName  string        `json:"full_name"`
	Access    models.Access `json:"access"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
// LogonKeyHash must already be the encoded hash output.
type CreateUserDTO struct {
	Email        string
	FullName     string
	LogonKeyHash string
	Access       *models.Access
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Access:    u.Access,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	access := models.DefaultAccess()
	if c.Access != nil {
		access = *c.Access
	}
	return &models.User{
		Email:        c.Email,
		FullName:     c.FullName,
		LogonKeyHash: c.LogonKeyHash,
		Access:       access,
	}
}
