package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Access carries the caller's privilege flags. Every user owns exactly one,
// embedded into the users row.
type Access struct {
	IsUser  bool `gorm:"column:is_user;not null;default:true" json:"is_user"`
	IsAdmin bool `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
}

// DefaultAccess mirrors the flags assigned at registration.
func DefaultAccess() Access {
	return Access{IsUser: true, IsAdmin: false}
}

// User represents the canonical identity entity. LogonKeyHash only ever holds
// the encoded hash output; the plaintext logon key is never persisted.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	FullName     string    `gorm:"column:full_name;not null"`
	LogonKeyHash string    `gorm:"column:logon_key_hash;not null"`
	Access       Access    `gorm:"embedded"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the identifier client-side so sqlite and Postgres
// behave the same.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
