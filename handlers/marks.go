package handlers

import (
	"context"
	"net/http"
	"strings"

	"athletics-backend/apperr"
	"athletics-backend/middleware"
	"athletics-backend/models"
	"athletics-backend/respond"
	"athletics-backend/stats"

	"github.com/google/uuid"
)

type MarkHandler struct {
	marks    MarkStore
	athletes AthleteStore
}

func NewMarkHandler(marks MarkStore, athletes AthleteStore) *MarkHandler {
	return &MarkHandler{marks: marks, athletes: athletes}
}

func markFilter(r *http.Request) (models.MarkFilter, error) {
	skip, limit, err := pagination(r)
	if err != nil {
		return models.MarkFilter{}, err
	}
	from, to, err := dateRange(r)
	if err != nil {
		return models.MarkFilter{}, err
	}

	q := r.URL.Query()
	markType := q.Get("type")
	if markType != "" && markType != models.MarkCompetition && markType != models.MarkTest {
		return models.MarkFilter{}, apperr.Validation("type must be one of [competicao teste]")
	}

	return models.MarkFilter{
		Skip:  skip,
		Limit: limit,
		Event: strings.TrimSpace(q.Get("event")),
		Type:  markType,
		From:  from,
		To:    to,
	}, nil
}

type eventKey struct {
	athlete uuid.UUID
	event   string
}

// views строит представления; рекорд считается по всем результатам атлета
// в дисциплине, а не только по отфильтрованной странице
func (h *MarkHandler) views(ctx context.Context, marks []models.Mark) ([]models.MarkView, error) {
	byEvent := make(map[eventKey][]models.Mark)
	views := make([]models.MarkView, 0, len(marks))
	for i := range marks {
		m := &marks[i]
		key := eventKey{m.AthleteID, m.Event}
		history, ok := byEvent[key]
		if !ok {
			var err error
			if history, err = h.marks.ListByEvent(ctx, m.AthleteID, m.Event); err != nil {
				return nil, err
			}
			byEvent[key] = history
		}
		views = append(views, stats.MarkViewOf(m, history))
	}
	return views, nil
}

func (h *MarkHandler) writeViews(w http.ResponseWriter, r *http.Request, status int, marks []models.Mark) {
	views, err := h.views(r.Context(), marks)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, status, views)
}

func (h *MarkHandler) writeView(w http.ResponseWriter, r *http.Request, status int, mark *models.Mark) {
	views, err := h.views(r.Context(), []models.Mark{*mark})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, status, views[0])
}

func (h *MarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MarkCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	req.Event = strings.TrimSpace(req.Event)
	if req.Event == "" {
		respond.Error(w, r, apperr.Validation("event is required"))
		return
	}
	if _, err := myProfile(r, h.athletes); err != nil {
		respond.Error(w, r, err)
		return
	}

	mark := models.Mark{
		AthleteID: currentUserID(r),
		Event:     req.Event,
		Result:    req.Result,
		Wind:      req.Wind,
		Date:      *req.Date,
		Location:  req.Location,
		Type:      req.Type,
		Notes:     req.Notes,
	}
	if err := h.marks.Create(r.Context(), &mark); err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeView(w, r, http.StatusCreated, &mark)
}

func (h *MarkHandler) Me(w http.ResponseWriter, r *http.Request) {
	filter, err := markFilter(r)
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

func (h *MarkHandler) MyStatistics(w http.ResponseWriter, r *http.Request) {
	if _, err := myProfile(r, h.athletes); err != nil {
		respond.Error(w, r, err)
		return
	}
	marks, err := h.marks.ListByAthlete(r.Context(), currentUserID(r), models.MarkFilter{})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats.SummarizeMarks(marks))
}

func (h *MarkHandler) MyRecords(w http.ResponseWriter, r *http.Request) {
	if _, err := myProfile(r, h.athletes); err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeRecords(w, r, currentUserID(r))
}

func (h *MarkHandler) ByAthlete(w http.ResponseWriter, r *http.Request) {
	filter, err := markFilter(r)
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

func (h *MarkHandler) AthleteRecords(w http.ResponseWriter, r *http.Request) {
	profile, err := pathProfile(r, h.athletes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeRecords(w, r, profile.UserID)
}

// List все результаты, только для тренеров
func (h *MarkHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := markFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	marks, err := h.marks.ListAll(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeViews(w, r, http.StatusOK, marks)
}

func (h *MarkHandler) writeList(w http.ResponseWriter, r *http.Request, athleteID uuid.UUID, filter models.MarkFilter) {
	marks, err := h.marks.ListByAthlete(r.Context(), athleteID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeViews(w, r, http.StatusOK, marks)
}

func (h *MarkHandler) writeRecords(w http.ResponseWriter, r *http.Request, athleteID uuid.UUID) {
	marks, err := h.marks.ListByAthlete(r.Context(), athleteID, models.MarkFilter{})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats.MarkViews(stats.PersonalRecords(marks), marks))
}

func (h *MarkHandler) load(r *http.Request) (*models.Mark, error) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		return nil, apperr.NotFound("Mark not found")
	}
	mark, err := h.marks.GetByID(r.Context(), id)
	if err != nil {
		return nil, notFoundAs(err, "Mark not found")
	}
	return mark, nil
}

func (h *MarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	mark, err := h.load(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	h.writeView(w, r, http.StatusOK, mark)
}

func (h *MarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.MarkUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	mark, err := h.load(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	req.ApplyTo(mark)
	mark.Event = strings.TrimSpace(mark.Event)
	if mark.Event == "" {
		respond.Error(w, r, apperr.Validation("event is required"))
		return
	}
	if err := h.marks.Update(r.Context(), mark); err != nil {
		respond.Error(w, r, notFoundAs(err, "Mark not found"))
		return
	}
	h.writeView(w, r, http.StatusOK, mark)
}

func (h *MarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	mark, err := h.load(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.marks.Delete(r.Context(), mark.ID); err != nil {
		respond.Error(w, r, notFoundAs(err, "Mark not found"))
		return
	}
	respond.NoContent(w)
}

func (h *MarkHandler) owner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	mark, err := h.marks.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return mark.AthleteID, nil
}
