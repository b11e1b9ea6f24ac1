package handlers

import (
	"errors"
	"net/http"

	"athletics-backend/apperr"
	"athletics-backend/middleware"
	"athletics-backend/models"
	"athletics-backend/respond"
)

type CoachHandler struct {
	coaches  CoachStore
	athletes *AthleteHandler
}

func NewCoachHandler(coaches CoachStore, athletes *AthleteHandler) *CoachHandler {
	return &CoachHandler{coaches: coaches, athletes: athletes}
}

func (h *CoachHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CoachProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	userID := currentUserID(r)

	if _, err := h.coaches.GetByUserID(r.Context(), userID); err == nil {
		respond.Error(w, r, apperr.Conflict("Coach profile already exists"))
		return
	} else if !errors.Is(err, apperr.ErrNotFound) {
		respond.Error(w, r, err)
		return
	}

	profile := models.CoachProfile{UserID: userID}
	in.ApplyTo(&profile)
	if err := h.coaches.Create(r.Context(), &profile); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			err = apperr.Conflict("Coach profile already exists")
		}
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, &profile)
}

func (h *CoachHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.coaches.GetByUserID(r.Context(), currentUserID(r))
	if err != nil {
		respond.Error(w, r, notFoundAs(err, "Coach profile not found"))
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *CoachHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in models.CoachProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}

	profile, err := h.coaches.GetByUserID(r.Context(), currentUserID(r))
	if err != nil {
		respond.Error(w, r, notFoundAs(err, "Coach profile not found"))
		return
	}

	in.ApplyTo(profile)
	if err := h.coaches.Update(r.Context(), profile); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

// MyAthletes атлеты, у которых coach_id равен текущему тренеру
func (h *CoachHandler) MyAthletes(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	profiles, err := h.athletes.athletes.ListByCoach(r.Context(), currentUserID(r), skip, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.athletes.views(profiles))
}

func (h *CoachHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		respond.Error(w, r, apperr.NotFound("Coach not found"))
		return
	}
	profile, err := h.coaches.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, notFoundAs(err, "Coach not found"))
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

func (h *CoachHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	profiles, err := h.coaches.List(r.Context(), skip, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, profiles)
}
