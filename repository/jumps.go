package repository

import (
	"context"

	"athletics-backend/apperr"
	"athletics-backend/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const jumpColumns = `id, athlete_id, date, jump1, jump2, jump3, notes, created_at, updated_at`

type JumpStore struct {
	DB *sqlx.DB
}

func NewJumpStore(db *sqlx.DB) *JumpStore {
	return &JumpStore{DB: db}
}

// Create вставляет прыжок; повтор даты для атлета даёт apperr.ErrDuplicate
func (s *JumpStore) Create(ctx context.Context, j *models.Jump) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO jumps (id, athlete_id, date, jump1, jump2, jump3, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, j.ID, j.AthleteID, j.Date, j.Jump1, j.Jump2, j.Jump3, j.Notes).Scan(&j.CreatedAt, &j.UpdatedAt)
	return translate(err, "create jump")
}

func (s *JumpStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Jump, error) {
	var j models.Jump
	err := s.DB.GetContext(ctx, &j, "SELECT "+jumpColumns+" FROM jumps WHERE id = $1", id)
	if err != nil {
		return nil, translate(err, "get jump")
	}
	return &j, nil
}

// ListByAthlete возвращает прыжки атлета, новые первыми
func (s *JumpStore) ListByAthlete(ctx context.Context, athleteID uuid.UUID, f models.JumpFilter) ([]models.Jump, error) {
	var b whereBuilder
	b.add("athlete_id = %s", athleteID)
	return s.list(ctx, &b, f)
}

func (s *JumpStore) ListAll(ctx context.Context, f models.JumpFilter) ([]models.Jump, error) {
	return s.list(ctx, &whereBuilder{}, f)
}

func (s *JumpStore) list(ctx context.Context, b *whereBuilder, f models.JumpFilter) ([]models.Jump, error) {
	if f.From != nil {
		b.add("date >= %s", *f.From)
	}
	if f.To != nil {
		b.add("date <= %s", *f.To)
	}
	query := "SELECT " + jumpColumns + " FROM jumps" + b.sql() + " ORDER BY date DESC, created_at DESC"
	query += b.page(f.Skip, f.Limit)

	jumps := []models.Jump{}
	if err := s.DB.SelectContext(ctx, &jumps, query, b.args...); err != nil {
		return nil, translate(err, "list jumps")
	}
	return jumps, nil
}

func (s *JumpStore) Update(ctx context.Context, j *models.Jump) error {
	err := s.DB.QueryRowxContext(ctx, `
		UPDATE jumps
		SET jump1 = $2, jump2 = $3, jump3 = $4, notes = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, j.ID, j.Jump1, j.Jump2, j.Jump3, j.Notes).Scan(&j.UpdatedAt)
	return translate(err, "update jump")
}

func (s *JumpStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM jumps WHERE id = $1", id)
	if err != nil {
		return translate(err, "delete jump")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Wrap(apperr.ErrNotFound, "delete jump")
	}
	return nil
}
