package handlers

import (
	"context"
	"net/http"

	"athletics-backend/apperr"
	"athletics-backend/middleware"
	"athletics-backend/models"
	"athletics-backend/respond"
	"athletics-backend/stats"

	"github.com/google/uuid"
)

type JumpHandler struct {
	jumps    JumpStore
	athletes AthleteStore
}

func NewJumpHandler(jumps JumpStore, athletes AthleteStore) *JumpHandler {
	return &JumpHandler{jumps: jumps, athletes: athletes}
}

// myProfile профиль атлета текущего пользователя; без него /me недоступны
func myProfile(r *http.Request, athletes AthleteStore) (*models.AthleteProfile, error) {
	profile, err := athletes.GetByUserID(r.Context(), currentUserID(r))
	if err != nil {
		return nil, notFoundAs(err, "Athlete profile not found")
	}
	return profile, nil
}

// pathProfile профиль атлета из {athlete_id}
func pathProfile(r *http.Request, athletes AthleteStore) (*models.AthleteProfile, error) {
	id, err := middleware.PathUUID(r, "athlete_id")
	if err != nil {
		return nil, apperr.NotFound("Athlete not found")
	}
	profile, err := athletes.GetByID(r.Context(), id)
	if err != nil {
		return nil, notFoundAs(err, "Athlete not found")
	}
	return profile, nil
}

func jumpFilter(r *http.Request) (models.JumpFilter, error) {
	skip, limit, err := pagination(r)
	if err != nil {
		return models.JumpFilter{}, err
	}
	from, to, err := dateRange(r)
	if err != nil {
		return models.JumpFilter{}, err
	}
	return models.JumpFilter{Skip: skip, Limit: limit, From: from, To: to}, nil
}

func jumpViews(jumps []models.Jump) []models.JumpView {
	views := make([]models.JumpView, 0, len(jumps))
	for i := range jumps {
		views = append(views, stats.JumpViewOf(&jumps[i]))
	}
	return views
}

func (h *JumpHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.JumpCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if _, err := myProfile(r, h.athletes); err != nil {
		respond.Error(w, r, err)
		return
	}

	jump := models.Jump{
		AthleteID: currentUserID(r),
		Date:      *req.Date,
		Jump1:     req.Jump1,
		Jump2:     req.Jump2,
		Jump3:     req.Jump3,
		Notes:     req.Notes,
	}
	if err := h.jumps.Create(r.Context(), &jump); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			err = apperr.Conflict("Jump already registered for " + jump.Date.String())
		}
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, stats.JumpViewOf(&jump))
}

func (h *JumpHandler) Me(w http.ResponseWriter, r *http.Request) {
	filter, err := jumpFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if _, err := myProfile(r, h.athletes); err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeList(w, r, currentUserID(r), filter)
}

func (h *JumpHandler) MyStatistics(w http.ResponseWriter, r *http.Request) {
	if _, err := myProfile(r, h.athletes); err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeStatistics(w, r, currentUserID(r))
}

func (h *JumpHandler) MyBest(w http.ResponseWriter, r *http.Request) {
	if _, err := myProfile(r, h.athletes); err != nil {
		respond.Error(w, r, err)
		return
	}
	jumps, err := h.jumps.ListByAthlete(r.Context(), currentUserID(r), models.JumpFilter{})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	best := stats.BestJump(jumps)
	if best == nil {
		respond.Error(w, r, apperr.NotFound("No jumps found"))
		return
	}
	respond.JSON(w, http.StatusOK, stats.JumpViewOf(best))
}

func (h *JumpHandler) ByAthlete(w http.ResponseWriter, r *http.Request) {
	filter, err := jumpFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	profile, err := pathProfile(r, h.athletes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeList(w, r, profile.UserID, filter)
}

func (h *JumpHandler) AthleteStatistics(w http.ResponseWriter, r *http.Request) {
	profile, err := pathProfile(r, h.athletes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeStatistics(w, r, profile.UserID)
}

// List все прыжки, только для тренеров
func (h *JumpHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := jumpFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	jumps, err := h.jumps.ListAll(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, jumpViews(jumps))
}

func (h *JumpHandler) writeList(w http.ResponseWriter, r *http.Request, athleteID uuid.UUID, filter models.JumpFilter) {
	jumps, err := h.jumps.ListByAthlete(r.Context(), athleteID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, jumpViews(jumps))
}

func (h *JumpHandler) writeStatistics(w http.ResponseWriter, r *http.Request, athleteID uuid.UUID) {
	jumps, err := h.jumps.ListByAthlete(r.Context(), athleteID, models.JumpFilter{})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats.SummarizeJumps(jumps))
}

func (h *JumpHandler) load(r *http.Request) (*models.Jump, error) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		return nil, apperr.NotFound("Jump not found")
	}
	jump, err := h.jumps.GetByID(r.Context(), id)
	if err != nil {
		return nil, notFoundAs(err, "Jump not found")
	}
	return jump, nil
}

func (h *JumpHandler) Get(w http.ResponseWriter, r *http.Request) {
	jump, err := h.load(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats.JumpViewOf(jump))
}

func (h *JumpHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.JumpUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	jump, err := h.load(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	req.ApplyTo(jump)
	if err := h.jumps.Update(r.Context(), jump); err != nil {
		respond.Error(w, r, notFoundAs(err, "Jump not found"))
		return
	}
	respond.JSON(w, http.StatusOK, stats.JumpViewOf(jump))
}

func (h *JumpHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jump, err := h.load(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.jumps.Delete(r.Context(), jump.ID); err != nil {
		respond.Error(w, r, notFoundAs(err, "Jump not found"))
		return
	}
	respond.NoContent(w)
}

func (h *JumpHandler) owner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	jump, err := h.jumps.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return jump.AthleteID, nil
}
