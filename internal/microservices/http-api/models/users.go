package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string `gorm:"not null;size:50" json:"name"`
	Email    string `gorm:"uniqueIndex:idx_users_email;not null" json:"email"`
	Password string `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON

	// Only the SHA-256 of the session token is stored; NULL means logged out.
	TokenHash      *string    `gorm:"uniqueIndex:idx_users_token_hash;size:64" json:"-"`
	TokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
