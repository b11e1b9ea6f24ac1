package handlers

import (
	"context"
	"time"

	"athletics-backend/models"

	"github.com/google/uuid"
)

// Интерфейсы хранилищ, которые нужны обработчикам. Реализации в repository.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AthleteStore interface {
	Create(ctx context.Context, p *models.AthleteProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AthleteProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AthleteProfile, error)
	List(ctx context.Context, q models.AthleteQuery) ([]models.AthleteProfile, error)
	ListByCoach(ctx context.Context, coachUserID uuid.UUID, skip, limit int) ([]models.AthleteProfile, error)
	Update(ctx context.Context, p *models.AthleteProfile) error
}

type CoachStore interface {
	Create(ctx context.Context, p *models.CoachProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CoachProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.CoachProfile, error)
	List(ctx context.Context, skip, limit int) ([]models.CoachProfile, error)
	Update(ctx context.Context, p *models.CoachProfile) error
}

type JumpStore interface {
	Create(ctx context.Context, j *models.Jump) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Jump, error)
	ListByAthlete(ctx context.Context, athleteID uuid.UUID, f models.JumpFilter) ([]models.Jump, error)
	ListAll(ctx context.Context, f models.JumpFilter) ([]models.Jump, error)
	Update(ctx context.Context, j *models.Jump) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MarkStore interface {
	Create(ctx context.Context, m *models.Mark) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Mark, error)
	ListByAthlete(ctx context.Context, athleteID uuid.UUID, f models.MarkFilter) ([]models.Mark, error)
	ListAll(ctx context.Context, f models.MarkFilter) ([]models.Mark, error)
	ListByEvent(ctx context.Context, athleteID uuid.UUID, event string) ([]models.Mark, error)
	Update(ctx context.Context, m *models.Mark) error
	Delete(ctx context.Context, id uuid.UUID) error
}
