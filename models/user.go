package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleAthlete = "athlete"
	RoleCoach   = "coach"
)

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"unique;not null;size:255"`
	PasswordHash *string    `json:"-" gorm:"column:password_hash;size:255"`
	Role         string     `json:"role" gorm:"not null;size:50"`
	GoogleID     *string    `json:"google_id,omitempty" gorm:"unique;size:255"`
	IsActive     bool       `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsCoach() bool   { return u.Role == RoleCoach }
func (u *User) IsAthlete() bool { return u.Role == RoleAthlete }

// Запросы для аутентификации
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	User        *User      `json:"user,omitempty"`
}

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=athlete coach"`
	GoogleID *string `json:"google_id,omitempty" validate:"omitempty,max=255"`
}

type UserUpdateRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}
