package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachProfile struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	Name            *string   `json:"name" gorm:"size:255"`
	Specialty       *string   `json:"specialty" gorm:"size:255"`
	Phone           *string   `json:"phone" gorm:"size:20"`
	Bio             *string   `json:"bio"`
	Certifications  *string   `json:"certifications"`
	YearsExperience *int      `json:"years_experience"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (CoachProfile) TableName() string {
	return "coach_profiles"
}

func (c *CoachProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CoachProfileInput struct {
	Name            *string `json:"name" validate:"omitempty,max=255"`
	Specialty       *string `json:"specialty" validate:"omitempty,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Bio             *string `json:"bio"`
	Certifications  *string `json:"certifications"`
	YearsExperience *int    `json:"years_experience" validate:"omitempty,gte=0"`
}

func (in *CoachProfileInput) ApplyTo(p *CoachProfile) {
	setString(&p.Name, in.Name)
	setString(&p.Specialty, in.Specialty)
	setString(&p.Phone, in.Phone)
	setString(&p.Bio, in.Bio)
	setString(&p.Certifications, in.Certifications)
	if in.YearsExperience != nil {
		p.YearsExperience = in.YearsExperience
	}
}
