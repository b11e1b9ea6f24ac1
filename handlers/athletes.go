package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"athletics-backend/apperr"
	"athletics-backend/models"
	"athletics-backend/respond"
	"athletics-backend/stats"

	"github.com/google/uuid"
)

type AthleteHandler struct {
	athletes AthleteStore
	users    UserStore
	now      func() time.Time
}

func NewAthleteHandler(athletes AthleteStore, users UserStore) *AthleteHandler {
	return &AthleteHandler{athletes: athletes, users: users, now: time.Now}
}

func (h *AthleteHandler) view(p *models.AthleteProfile) models.AthleteView {
	return stats.AthleteViewOf(p, h.now())
}

// Create создаёт профиль атлета для текущего пользователя
func (h *AthleteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AthleteProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	userID := currentUserID(r)

	if _, err := h.athletes.GetByUserID(r.Context(), userID); err == nil {
		respond.Error(w, r, apperr.Conflict("Athlete profile already exists"))
		return
	} else if !errors.Is(err, apperr.ErrNotFound) {
		respond.Error(w, r, err)
		return
	}

	if err := h.checkCoach(r.Context(), in.CoachID); err != nil {
		respond.Error(w, r, err)
		return
	}

	profile := models.AthleteProfile{UserID: userID}
	in.ApplyTo(&profile)
	if err := h.athletes.Create(r.Context(), &profile); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			err = apperr.Conflict("Athlete profile already exists")
		}
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, h.view(&profile))
}

// checkCoach проверяет, что coach_id указывает на пользователя-тренера
func (h *AthleteHandler) checkCoach(ctx context.Context, coachID *uuid.UUID) error {
	if coachID == nil {
		return nil
	}
	coach, err := h.users.GetByID(ctx, *coachID)
	if err != nil {
		return notFoundAs(err, "Coach not found")
	}
	if !coach.IsCoach() {
		return apperr.NotFound("Coach not found")
	}
	return nil
}

func (h *AthleteHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.athletes.GetByUserID(r.Context(), currentUserID(r))
	if err != nil {
		respond.Error(w, r, notFoundAs(err, "Athlete profile not found"))
		return
	}
	respond.JSON(w, http.StatusOK, h.view(profile))
}

func (h *AthleteHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in models.AthleteProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}

	profile, err := h.athletes.GetByUserID(r.Context(), currentUserID(r))
	if err != nil {
		respond.Error(w, r, notFoundAs(err, "Athlete profile not found"))
		return
	}
	if err := h.checkCoach(r.Context(), in.CoachID); err != nil {
		respond.Error(w, r, err)
		return
	}

	in.ApplyTo(profile)
	if err := h.athletes.Update(r.Context(), profile); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.view(profile))
}

// Get доступен владельцу профиля и тренерам
func (h *AthleteHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := pathProfile(r, h.athletes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.view(profile))
}

// List список атлетов для тренеров: пагинация, фильтр по имени, сортировка
func (h *AthleteHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	// Параметры сортировки
	sortBy := r.URL.Query().Get("sort")
	if _, ok := models.AthleteSorts[sortBy]; sortBy != "" && !ok {
		respond.Error(w, r, apperr.Validation("sort must be one of name, -name, created_at, -created_at"))
		return
	}

	// Параметры фильтрации
	nameFilter := strings.TrimSpace(r.URL.Query().Get("name"))

	profiles, err := h.athletes.List(r.Context(), models.AthleteQuery{
		Skip:  skip,
		Limit: limit,
		Name:  nameFilter,
		Sort:  sortBy,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.views(profiles))
}

func (h *AthleteHandler) views(profiles []models.AthleteProfile) []models.AthleteView {
	views := make([]models.AthleteView, 0, len(profiles))
	for i := range profiles {
		views = append(views, h.view(&profiles[i]))
	}
	return views
}

// profileOwner возвращает user id владельца профиля атлета
func profileOwner(athletes AthleteStore) func(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return func(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
		p, err := athletes.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, err
		}
		return p.UserID, nil
	}
}
