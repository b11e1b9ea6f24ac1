package repository

import (
	"context"
	"time"

	"athletics-backend/apperr"
	"athletics-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error, "create user")
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "get user by email")
	}
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	res := s.db.WithContext(ctx).Model(user).
		Select("email", "password_hash", "is_active", "updated_at").
		Updates(user)
	if res.Error != nil {
		return translate(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(apperr.ErrNotFound, "update user")
	}
	return nil
}

func (s *UserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error
	return translate(err, "touch last login")
}

// Delete удаляет пользователя; профили, прыжки и результаты удаляются каскадом
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(apperr.ErrNotFound, "delete user")
	}
	return nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, translate(err, "count users")
}
