package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"athletics-backend/apperr"
	"athletics-backend/auth"
	"athletics-backend/models"
	"athletics-backend/respond"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      UserFinder
}

func NewAuthMiddleware(jwtService *auth.JWTService, users UserFinder) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// AuthMiddleware проверяет JWT токен и загружает текущего пользователя
func (am *AuthMiddleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := respond.Logger(r.Context())

		// Извлекаем токен из заголовка
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respond.Error(w, r, apperr.Unauthenticated("Not authenticated"))
			return
		}

		// Проверяем формат заголовка
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			respond.Error(w, r, apperr.Unauthenticated("Invalid authorization format"))
			return
		}

		// Валидируем токен
		claims, err := am.jwtService.ValidateToken(token)
		if err != nil {
			log.WithError(err).Debug("❌ invalid token")
			respond.Error(w, r, apperr.Unauthenticated("Could not validate credentials"))
			return
		}

		user, err := am.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				respond.Error(w, r, apperr.Unauthenticated("Could not validate credentials"))
				return
			}
			respond.Error(w, r, err)
			return
		}

		if !user.IsActive {
			respond.Error(w, r, apperr.Inactive("Inactive user"))
			return
		}

		// Добавляем пользователя в контекст запроса
		ctx := SetCurrentUser(r.Context(), user)
		ctx = respond.WithLogger(ctx, log.WithFields(logrus.Fields{
			"user.id":   user.ID.String(),
			"user.role": user.Role,
		}))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Вспомогательные функции для работы с контекстом
type contextKey string

const currentUserKey contextKey = "currentUser"

func SetCurrentUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser возвращает пользователя, загруженного AuthMiddleware
func CurrentUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(currentUserKey).(*models.User); ok {
		return user
	}
	return nil
}
