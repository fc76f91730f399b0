package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of authorization levels. Stored as a plain
// string column instead of a lookup table so the permission layer can
// work with compile-time constants.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Bio      *string   `gorm:"type:text" json:"bio,omitempty"`
	Role     Role      `gorm:"size:20;not null;default:user" json:"role"`

	// One-time numeric credential mailed on signup. Cleared after a
	// successful token exchange so it cannot be replayed.
	ConfirmationCode *string `gorm:"size:6" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
