package auth

import (
	"context"
	"errors"

	"athletics-backend/apperr"
	"athletics-backend/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("inactive user")
)

type UserByEmailFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticate проверяет email и пароль. Пользователь без пароля (OAuth)
// не может войти по паролю. Неактивный пользователь получает ErrInactive
// только при верном пароле.
func Authenticate(ctx context.Context, users UserByEmailFinder, email, password string) (*models.User, error) {
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil || !CheckPassword(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactive
	}

	return user, nil
}
