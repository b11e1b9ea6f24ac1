package models

import (
	"time"

	"github.com/google/uuid"
)

// Jump is one day of vertical-jump testing: three attempts in centimetres.
// AthleteID is the owning user's id.
type Jump struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AthleteID uuid.UUID `json:"athlete_id" db:"athlete_id"`
	Date      Date      `json:"date" db:"date"`
	Jump1     float64   `json:"jump1" db:"jump1" gorm:"column:jump1"`
	Jump2     float64   `json:"jump2" db:"jump2" gorm:"column:jump2"`
	Jump3     float64   `json:"jump3" db:"jump3" gorm:"column:jump3"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type JumpCreateRequest struct {
	Date  *Date   `json:"date" validate:"required"`
	Jump1 float64 `json:"jump1" validate:"gt=0,lte=200"`
	Jump2 float64 `json:"jump2" validate:"gt=0,lte=200"`
	Jump3 float64 `json:"jump3" validate:"gt=0,lte=200"`
	Notes *string `json:"notes"`
}

type JumpUpdateRequest struct {
	Jump1 *float64 `json:"jump1" validate:"omitempty,gt=0,lte=200"`
	Jump2 *float64 `json:"jump2" validate:"omitempty,gt=0,lte=200"`
	Jump3 *float64 `json:"jump3" validate:"omitempty,gt=0,lte=200"`
	Notes *string  `json:"notes"`
}

func (in *JumpUpdateRequest) ApplyTo(j *Jump) {
	if in.Jump1 != nil {
		j.Jump1 = *in.Jump1
	}
	if in.Jump2 != nil {
		j.Jump2 = *in.Jump2
	}
	if in.Jump3 != nil {
		j.Jump3 = *in.Jump3
	}
	setString(&j.Notes, in.Notes)
}

type JumpView struct {
	*Jump
	Average     float64 `json:"average"`
	MaxJump     float64 `json:"max_jump"`
	MinJump     float64 `json:"min_jump"`
	Consistency float64 `json:"consistency"`
}

type JumpFilter struct {
	Skip  int
	Limit int
	From  *Date
	To    *Date
}
