package repository

import (
	"context"
	"strings"

	"athletics-backend/apperr"
	"athletics-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AthleteStore struct {
	db *gorm.DB
}

func NewAthleteStore(db *gorm.DB) *AthleteStore {
	return &AthleteStore{db: db}
}

func (s *AthleteStore) Create(ctx context.Context, p *models.AthleteProfile) error {
	return translate(s.db.WithContext(ctx).Create(p).Error, "create athlete profile")
}

func (s *AthleteStore) GetByID(ctx context.Context, id uuid.UUID) (*models.AthleteProfile, error) {
	var p models.AthleteProfile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get athlete profile")
	}
	return &p, nil
}

func (s *AthleteStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AthleteProfile, error) {
	var p models.AthleteProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err, "get athlete profile by user")
	}
	return &p, nil
}

// List возвращает атлетов с фильтром по имени и сортировкой из белого списка
func (s *AthleteStore) List(ctx context.Context, q models.AthleteQuery) ([]models.AthleteProfile, error) {
	query := s.db.WithContext(ctx).Model(&models.AthleteProfile{})

	if q.Name != "" {
		cleanName := strings.Trim(q.Name, "*")
		query = query.Where("name ILIKE ?", containsPattern(cleanName))
	}

	order, ok := models.AthleteSorts[q.Sort]
	if !ok {
		order = "created_at ASC"
	}

	profiles := []models.AthleteProfile{}
	err := query.Order(order).Order("id ASC").
		Offset(q.Skip).Limit(limitOrDefault(q.Limit)).
		Find(&profiles).Error
	if err != nil {
		return nil, translate(err, "list athlete profiles")
	}
	return profiles, nil
}

func (s *AthleteStore) ListByCoach(ctx context.Context, coachUserID uuid.UUID, skip, limit int) ([]models.AthleteProfile, error) {
	profiles := []models.AthleteProfile{}
	err := s.db.WithContext(ctx).
		Where("coach_id = ?", coachUserID).
		Order("name ASC").Order("id ASC").
		Offset(skip).Limit(limitOrDefault(limit)).
		Find(&profiles).Error
	if err != nil {
		return nil, translate(err, "list athletes by coach")
	}
	return profiles, nil
}

func (s *AthleteStore) Update(ctx context.Context, p *models.AthleteProfile) error {
	res := s.db.WithContext(ctx).Model(p).Select("*").Omit("id", "user_id", "created_at").Updates(p)
	if res.Error != nil {
		return translate(res.Error, "update athlete profile")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(apperr.ErrNotFound, "update athlete profile")
	}
	return nil
}
