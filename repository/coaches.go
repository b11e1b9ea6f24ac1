package repository

import (
	"context"

	"athletics-backend/apperr"
	"athletics-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CoachStore struct {
	db *gorm.DB
}

func NewCoachStore(db *gorm.DB) *CoachStore {
	return &CoachStore{db: db}
}

func (s *CoachStore) Create(ctx context.Context, p *models.CoachProfile) error {
	return translate(s.db.WithContext(ctx).Create(p).Error, "create coach profile")
}

func (s *CoachStore) GetByID(ctx context.Context, id uuid.UUID) (*models.CoachProfile, error) {
	var p models.CoachProfile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get coach profile")
	}
	return &p, nil
}

func (s *CoachStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CoachProfile, error) {
	var p models.CoachProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err, "get coach profile by user")
	}
	return &p, nil
}

func (s *CoachStore) List(ctx context.Context, skip, limit int) ([]models.CoachProfile, error) {
	profiles := []models.CoachProfile{}
	err := s.db.WithContext(ctx).
		Order("name ASC").Order("id ASC").
		Offset(skip).Limit(limitOrDefault(limit)).
		Find(&profiles).Error
	if err != nil {
		return nil, translate(err, "list coach profiles")
	}
	return profiles, nil
}

func (s *CoachStore) Update(ctx context.Context, p *models.CoachProfile) error {
	res := s.db.WithContext(ctx).Model(p).Select("*").Omit("id", "user_id", "created_at").Updates(p)
	if res.Error != nil {
		return translate(res.Error, "update coach profile")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(apperr.ErrNotFound, "update coach profile")
	}
	return nil
}
