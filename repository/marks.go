package repository

import (
	"context"

	"athletics-backend/apperr"
	"athletics-backend/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const markColumns = `id, athlete_id, event, result, wind, date, location, type, notes, created_at, updated_at`

type MarkStore struct {
	DB *sqlx.DB
}

func NewMarkStore(db *sqlx.DB) *MarkStore {
	return &MarkStore{DB: db}
}

func (s *MarkStore) Create(ctx context.Context, m *models.Mark) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO marks (id, athlete_id, event, result, wind, date, location, type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, m.ID, m.AthleteID, m.Event, m.Result, m.Wind, m.Date, m.Location, m.Type, m.Notes).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	return translate(err, "create mark")
}

func (s *MarkStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Mark, error) {
	var m models.Mark
	err := s.DB.GetContext(ctx, &m, "SELECT "+markColumns+" FROM marks WHERE id = $1", id)
	if err != nil {
		return nil, translate(err, "get mark")
	}
	return &m, nil
}

// ListByAthlete возвращает результаты атлета с фильтрами, новые первыми
func (s *MarkStore) ListByAthlete(ctx context.Context, athleteID uuid.UUID, f models.MarkFilter) ([]models.Mark, error) {
	var b whereBuilder
	b.add("athlete_id = %s", athleteID)
	return s.list(ctx, &b, f)
}

func (s *MarkStore) ListAll(ctx context.Context, f models.MarkFilter) ([]models.Mark, error) {
	return s.list(ctx, &whereBuilder{}, f)
}

// ListByEvent возвращает все результаты атлета в одной дисциплине
func (s *MarkStore) ListByEvent(ctx context.Context, athleteID uuid.UUID, event string) ([]models.Mark, error) {
	return s.ListByAthlete(ctx, athleteID, models.MarkFilter{Event: event})
}

func (s *MarkStore) list(ctx context.Context, b *whereBuilder, f models.MarkFilter) ([]models.Mark, error) {
	if f.Event != "" {
		b.add("event = %s", f.Event)
	}
	if f.Type != "" {
		b.add("type = %s", f.Type)
	}
	if f.From != nil {
		b.add("date >= %s", *f.From)
	}
	if f.To != nil {
		b.add("date <= %s", *f.To)
	}
	query := "SELECT " + markColumns + " FROM marks" + b.sql() + " ORDER BY date DESC, created_at DESC"
	query += b.page(f.Skip, f.Limit)

	marks := []models.Mark{}
	if err := s.DB.SelectContext(ctx, &marks, query, b.args...); err != nil {
		return nil, translate(err, "list marks")
	}
	return marks, nil
}

func (s *MarkStore) Update(ctx context.Context, m *models.Mark) error {
	err := s.DB.QueryRowxContext(ctx, `
		UPDATE marks
		SET event = $2, result = $3, wind = $4, date = $5, location = $6, type = $7, notes = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, m.ID, m.Event, m.Result, m.Wind, m.Date, m.Location, m.Type, m.Notes).Scan(&m.UpdatedAt)
	return translate(err, "update mark")
}

func (s *MarkStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM marks WHERE id = $1", id)
	if err != nil {
		return translate(err, "delete mark")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Wrap(apperr.ErrNotFound, "delete mark")
	}
	return nil
}
