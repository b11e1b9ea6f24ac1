package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AthleteProfile struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	CoachID          *uuid.UUID `json:"coach_id" gorm:"type:uuid"`
	Name             *string    `json:"name" gorm:"size:255"`
	BirthDate        *Date      `json:"birth_date" gorm:"type:date"`
	HeightCM         *int       `json:"height_cm"`
	WeightKG         *float64   `json:"weight_kg"`
	ShoeSize         *int       `json:"shoe_size"`
	Address          *string    `json:"address"`
	Phone            *string    `json:"phone" gorm:"size:20"`
	MainEvent        *string    `json:"main_event" gorm:"size:100"`
	SecondaryEvent   *string    `json:"secondary_event" gorm:"size:100"`
	Experience       *string    `json:"experience" gorm:"size:50"`
	Category         *string    `json:"category" gorm:"size:50"`
	BloodType        *string    `json:"blood_type" gorm:"size:5"`
	Allergies        *string    `json:"allergies"`
	Medications      *string    `json:"medications"`
	EmergencyContact *string    `json:"emergency_contact" gorm:"size:255"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (AthleteProfile) TableName() string {
	return "athlete_profiles"
}

func (a *AthleteProfile) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AthleteProfileInput is the body of POST /athletes and PUT /athletes/me.
// Nil fields are left untouched on update.
type AthleteProfileInput struct {
	CoachID          *uuid.UUID `json:"coach_id"`
	Name             *string    `json:"name" validate:"omitempty,max=255"`
	BirthDate        *Date      `json:"birth_date"`
	HeightCM         *int       `json:"height_cm" validate:"omitempty,gte=100,lte=250"`
	WeightKG         *float64   `json:"weight_kg" validate:"omitempty,gte=30,lte=200"`
	ShoeSize         *int       `json:"shoe_size" validate:"omitempty,gte=20,lte=60"`
	Address          *string    `json:"address"`
	Phone            *string    `json:"phone" validate:"omitempty,max=20"`
	MainEvent        *string    `json:"main_event" validate:"omitempty,max=100"`
	SecondaryEvent   *string    `json:"secondary_event" validate:"omitempty,max=100"`
	Experience       *string    `json:"experience" validate:"omitempty,max=50"`
	Category         *string    `json:"category" validate:"omitempty,max=50"`
	BloodType        *string    `json:"blood_type" validate:"omitempty,max=5"`
	Allergies        *string    `json:"allergies"`
	Medications      *string    `json:"medications"`
	EmergencyContact *string    `json:"emergency_contact" validate:"omitempty,max=255"`
}

func (in *AthleteProfileInput) ApplyTo(p *AthleteProfile) {
	if in.CoachID != nil {
		p.CoachID = in.CoachID
	}
	setString(&p.Name, in.Name)
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.HeightCM != nil {
		p.HeightCM = in.HeightCM
	}
	if in.WeightKG != nil {
		p.WeightKG = in.WeightKG
	}
	if in.ShoeSize != nil {
		p.ShoeSize = in.ShoeSize
	}
	setString(&p.Address, in.Address)
	setString(&p.Phone, in.Phone)
	setString(&p.MainEvent, in.MainEvent)
	setString(&p.SecondaryEvent, in.SecondaryEvent)
	setString(&p.Experience, in.Experience)
	setString(&p.Category, in.Category)
	setString(&p.BloodType, in.BloodType)
	setString(&p.Allergies, in.Allergies)
	setString(&p.Medications, in.Medications)
	setString(&p.EmergencyContact, in.EmergencyContact)
}

type AthleteView struct {
	*AthleteProfile
	Age *int `json:"age"`
}

// AthleteQuery описывает фильтрацию и пагинацию списка атлетов
type AthleteQuery struct {
	Skip  int
	Limit int
	Name  string
	Sort  string // ключ из AthleteSorts, "-" в начале означает DESC
}

// AthleteSorts допустимые значения параметра sort
var AthleteSorts = map[string]string{
	"name":        "name ASC",
	"-name":       "name DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

func setString(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}
