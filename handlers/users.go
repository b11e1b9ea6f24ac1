package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"athletics-backend/apperr"
	"athletics-backend/auth"
	"athletics-backend/middleware"
	"athletics-backend/models"
	"athletics-backend/respond"

	"github.com/google/uuid"
)

type UserHandler struct {
	users      UserStore
	jwtService *auth.JWTService
}

func NewUserHandler(users UserStore, jwtService *auth.JWTService) *UserHandler {
	return &UserHandler{
		users:      users,
		jwtService: jwtService,
	}
}

// Register регистрирует нового пользователя, токен не выдаётся
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	email := normalizeEmail(req.Email)

	// Проверяем, существует ли пользователь
	if _, err := h.users.GetByEmail(r.Context(), email); err == nil {
		respond.Error(w, r, apperr.Conflict("Email already registered"))
		return
	} else if !errors.Is(err, apperr.ErrNotFound) {
		respond.Error(w, r, err)
		return
	}

	// Хэшируем пароль
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: &hashedPassword,
		Role:         req.Role,
		GoogleID:     req.GoogleID,
		IsActive:     true,
	}
	if err := h.users.Create(r.Context(), &user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			err = apperr.Conflict("Email already registered")
		}
		respond.Error(w, r, err)
		return
	}

	respond.Logger(r.Context()).WithField("user.role", user.Role).Info("✅ User registered")
	respond.JSON(w, http.StatusCreated, &user)
}

// Login выдаёт токен по email и паролю
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	resp, err := h.login(r, req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

// Token совместим с OAuth2 password flow: form-поля username и password
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, apperr.Validation("Invalid form body"))
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		respond.Error(w, r, apperr.Validation("username and password are required"))
		return
	}

	resp, err := h.login(r, username, password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
	})
}

func (h *UserHandler) login(r *http.Request, email, password string) (*models.TokenResponse, error) {
	log := respond.Logger(r.Context())

	user, err := auth.Authenticate(r.Context(), h.users, normalizeEmail(email), password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Info("❌ Invalid login attempt")
		return nil, apperr.Unauthenticated("Incorrect email or password")
	case errors.Is(err, auth.ErrInactive):
		return nil, apperr.Inactive("Inactive user")
	case err != nil:
		return nil, err
	}

	now := time.Now().UTC()
	if err := h.users.TouchLastLogin(r.Context(), user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	// Генерируем токен
	token, expiresAt, err := h.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	log.WithField("user.id", user.ID.String()).Info("✅ User logged in")
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   &expiresAt,
		User:        user,
	}, nil
}

// Me возвращает текущего пользователя
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, middleware.CurrentUser(r.Context()))
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.UserUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	user := *middleware.CurrentUser(r.Context())

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			existing, err := h.users.GetByEmail(r.Context(), email)
			if err == nil && existing.ID != user.ID {
				respond.Error(w, r, apperr.Conflict("Email already registered"))
				return
			}
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				respond.Error(w, r, err)
				return
			}
			user.Email = email
		}
	}

	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		user.PasswordHash = &hashed
	}

	if err := h.users.Update(r.Context(), &user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			err = apperr.Conflict("Email already registered")
		}
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, &user)
}

// DeleteMe удаляет аккаунт вместе с профилями, прыжками и результатами
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if err := h.users.Delete(r.Context(), user.ID); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Logger(r.Context()).Info("🗑️ User deleted")
	respond.NoContent(w)
}

// Get доступен самому пользователю и тренерам (см. middleware.Self)
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		respond.Error(w, r, apperr.NotFound("User not found"))
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, notFoundAs(err, "User not found"))
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// notFoundAs заменяет сообщение для отсутствующей записи
func notFoundAs(err error, detail string) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(detail)
	}
	return err
}

func currentUserID(r *http.Request) uuid.UUID {
	if u := middleware.CurrentUser(r.Context()); u != nil {
		return u.ID
	}
	return uuid.Nil
}
