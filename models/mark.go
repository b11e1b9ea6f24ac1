package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы марок
const (
	MarkCompetition = "competicao"
	MarkTest        = "teste"
)

// Mark is a timed result in an event. Result is in seconds, Wind in m/s.
type Mark struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AthleteID uuid.UUID `json:"athlete_id" db:"athlete_id"`
	Event     string    `json:"event" db:"event"`
	Result    float64   `json:"result" db:"result"`
	Wind      *float64  `json:"wind" db:"wind"`
	Date      Date      `json:"date" db:"date"`
	Location  *string   `json:"location" db:"location"`
	Type      string    `json:"type" db:"type"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type MarkCreateRequest struct {
	Event    string   `json:"event" validate:"required,max=100"`
	Result   float64  `json:"result" validate:"gt=0"`
	Wind     *float64 `json:"wind" validate:"omitempty,gte=-5,lte=5"`
	Date     *Date    `json:"date" validate:"required"`
	Location *string  `json:"location" validate:"omitempty,max=255"`
	Type     string   `json:"type" validate:"required,oneof=competicao teste"`
	Notes    *string  `json:"notes"`
}

type MarkUpdateRequest struct {
	Event    *string       `json:"event" validate:"omitempty,min=1,max=100"`
	Result   *float64      `json:"result" validate:"omitempty,gt=0"`
	Wind     NullableFloat `json:"wind" validate:"omitempty,gte=-5,lte=5"`
	Date     *Date         `json:"date"`
	Location *string       `json:"location" validate:"omitempty,max=255"`
	Type     *string       `json:"type" validate:"omitempty,oneof=competicao teste"`
	Notes    *string       `json:"notes"`
}

func (in *MarkUpdateRequest) ApplyTo(m *Mark) {
	if in.Event != nil {
		m.Event = *in.Event
	}
	if in.Result != nil {
		m.Result = *in.Result
	}
	if in.Wind.Set {
		m.Wind = in.Wind.Value
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	setString(&m.Location, in.Location)
	if in.Type != nil {
		m.Type = *in.Type
	}
	setString(&m.Notes, in.Notes)
}

type MarkView struct {
	*Mark
	IsValidWind    bool    `json:"is_valid_wind"`
	WindStatus     string  `json:"wind_status"`
	PacePer100m    float64 `json:"pace_per_100m"`
	IsPersonalBest bool    `json:"is_personal_best"`
}

type MarkFilter struct {
	Skip  int
	Limit int
	Event string
	Type  string
	From  *Date
	To    *Date
}
