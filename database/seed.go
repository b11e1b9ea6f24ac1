package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"athletics-backend/auth"
	"athletics-backend/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const SeedPassword = "password123"

// SeedAccount описывает демо-аккаунт и то, был ли он создан в этом запуске
type SeedAccount struct {
	Email   string
	Role    string
	Name    string
	Created bool
}

// Seed создаёт демо тренера и атлета с полными профилями, связью тренер-атлет
// и несколькими прыжками и результатами. Существующие аккаунты пропускаются.
func Seed(ctx context.Context, db *DB, log logrus.FieldLogger) ([]SeedAccount, error) {
	log.Info("🌱 Seeding demo data...")

	hash, err := auth.HashPassword(SeedPassword)
	if err != nil {
		return nil, err
	}

	coachAcc := SeedAccount{Email: "coach@example.com", Role: models.RoleCoach, Name: "Carlos Treinador"}
	athleteAcc := SeedAccount{Email: "athlete@example.com", Role: models.RoleAthlete, Name: "Ana Atleta"}

	err = db.Gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		coach, created, err := ensureUser(tx, coachAcc.Email, models.RoleCoach, hash)
		if err != nil {
			return err
		}
		coachAcc.Created = created
		if created {
			if err := tx.Create(demoCoachProfile(coach.ID, coachAcc.Name)).Error; err != nil {
				return fmt.Errorf("create coach profile: %w", err)
			}
		}

		athlete, created, err := ensureUser(tx, athleteAcc.Email, models.RoleAthlete, hash)
		if err != nil {
			return err
		}
		athleteAcc.Created = created
		if !created {
			return nil
		}

		if err := tx.Create(demoAthleteProfile(athlete.ID, coach.ID, athleteAcc.Name)).Error; err != nil {
			return fmt.Errorf("create athlete profile: %w", err)
		}
		for _, j := range demoJumps(athlete.ID) {
			if err := tx.Create(&j).Error; err != nil {
				return fmt.Errorf("create jump: %w", err)
			}
		}
		for _, m := range demoMarks(athlete.ID) {
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("create mark: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	accounts := []SeedAccount{coachAcc, athleteAcc}
	for _, acc := range accounts {
		log.WithFields(logrus.Fields{"email": acc.Email, "role": acc.Role, "created": acc.Created}).
			Info("✅ Demo account ready")
	}
	return accounts, nil
}

func ensureUser(tx *gorm.DB, email, role, hash string) (*models.User, bool, error) {
	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup %s: %w", email, err)
	}

	user = models.User{Email: email, PasswordHash: &hash, Role: role, IsActive: true}
	if err := tx.Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("create %s: %w", email, err)
	}
	return &user, true, nil
}

func str(s string) *string { return &s }
func num(v int) *int       { return &v }

func demoCoachProfile(userID uuid.UUID, name string) *models.CoachProfile {
	return &models.CoachProfile{
		UserID:          userID,
		Name:            str(name),
		Specialty:       str("Velocidade"),
		Phone:           str("(11) 98888-0001"),
		Bio:             str("Treinador de provas de velocidade e revezamento."),
		Certifications:  str("CREF, IAAF Level 2"),
		YearsExperience: num(12),
	}
}

func demoAthleteProfile(userID, coachID uuid.UUID, name string) *models.AthleteProfile {
	birth := models.NewDate(2004, time.March, 12)
	weight := 62.5
	return &models.AthleteProfile{
		UserID:           userID,
		CoachID:          &coachID,
		Name:             str(name),
		BirthDate:        &birth,
		HeightCM:         num(172),
		WeightKG:         &weight,
		ShoeSize:         num(39),
		Address:          str("Rua das Pistas, 100"),
		Phone:            str("(11) 97777-0002"),
		MainEvent:        str("100m"),
		SecondaryEvent:   str("200m"),
		Experience:       str("intermediario"),
		Category:         str("adulto"),
		BloodType:        str("O+"),
		Allergies:        str("nenhuma"),
		Medications:      str("nenhum"),
		EmergencyContact: str("Maria Atleta (11) 96666-0003"),
	}
}

func demoJumps(athleteID uuid.UUID) []models.Jump {
	return []models.Jump{
		{ID: uuid.New(), AthleteID: athleteID, Date: models.NewDate(2024, time.January, 8), Jump1: 48.5, Jump2: 50.0, Jump3: 49.2},
		{ID: uuid.New(), AthleteID: athleteID, Date: models.NewDate(2024, time.January, 15), Jump1: 50.1, Jump2: 51.3, Jump3: 50.8},
		{ID: uuid.New(), AthleteID: athleteID, Date: models.NewDate(2024, time.January, 22), Jump1: 51.0, Jump2: 52.4, Jump3: 51.7, Notes: str("Boa recuperação")},
	}
}

func demoMarks(athleteID uuid.UUID) []models.Mark {
	wind := func(v float64) *float64 { return &v }
	return []models.Mark{
		{ID: uuid.New(), AthleteID: athleteID, Event: "100m", Result: 12.45, Wind: wind(1.2), Date: models.NewDate(2024, time.February, 3), Location: str("Estádio Ícaro de Castro Melo"), Type: models.MarkCompetition},
		{ID: uuid.New(), AthleteID: athleteID, Event: "100m", Result: 12.31, Wind: wind(2.6), Date: models.NewDate(2024, time.March, 9), Location: str("Centro Olímpico"), Type: models.MarkCompetition},
		{ID: uuid.New(), AthleteID: athleteID, Event: "200m", Result: 25.80, Date: models.NewDate(2024, time.February, 20), Type: models.MarkTest, Notes: str("Treino controlado")},
	}
}
