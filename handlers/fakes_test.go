package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"athletics-backend/apperr"
	"athletics-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// memDB is an in-memory stand-in for Postgres with the same uniqueness
// rules and ON DELETE CASCADE behaviour.
type memDB struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	athletes map[uuid.UUID]*models.AthleteProfile
	coaches  map[uuid.UUID]*models.CoachProfile
	jumps    map[uuid.UUID]*models.Jump
	marks    map[uuid.UUID]*models.Mark
	seq      int
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uuid.UUID]*models.User{},
		athletes: map[uuid.UUID]*models.AthleteProfile{},
		coaches:  map[uuid.UUID]*models.CoachProfile{},
		jumps:    map[uuid.UUID]*models.Jump{},
		marks:    map[uuid.UUID]*models.Mark{},
	}
}

// tick returns strictly increasing timestamps so created_at ordering is stable.
func (db *memDB) tick() time.Time {
	db.seq++
	return time.Date(2024, 1, 1, 0, 0, db.seq, 0, time.UTC)
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type fakeUsers struct{ *memDB }

func (f fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return errors.Wrap(apperr.ErrDuplicate, "create user")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt, u.UpdatedAt = f.tick(), f.tick()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get user")
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get user by email")
}

func (f fakeUsers) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "update user")
	}
	for _, existing := range f.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return errors.Wrap(apperr.ErrDuplicate, "update user")
		}
	}
	u.UpdatedAt = f.tick()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (f fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "delete user")
	}
	delete(f.users, id)
	for k, p := range f.athletes {
		if p.UserID == id {
			delete(f.athletes, k)
		} else if p.CoachID != nil && *p.CoachID == id {
			p.CoachID = nil
		}
	}
	for k, p := range f.coaches {
		if p.UserID == id {
			delete(f.coaches, k)
		}
	}
	for k, j := range f.jumps {
		if j.AthleteID == id {
			delete(f.jumps, k)
		}
	}
	for k, m := range f.marks {
		if m.AthleteID == id {
			delete(f.marks, k)
		}
	}
	return nil
}

type fakeAthletes struct{ *memDB }

func (f fakeAthletes) Create(_ context.Context, p *models.AthleteProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.athletes {
		if existing.UserID == p.UserID {
			return errors.Wrap(apperr.ErrDuplicate, "create athlete profile")
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt, p.UpdatedAt = f.tick(), f.tick()
	cp := *p
	f.athletes[p.ID] = &cp
	return nil
}

func (f fakeAthletes) GetByID(_ context.Context, id uuid.UUID) (*models.AthleteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.athletes[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get athlete profile")
}

func (f fakeAthletes) GetByUserID(_ context.Context, userID uuid.UUID) (*models.AthleteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.athletes {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get athlete profile by user")
}

func (f fakeAthletes) List(_ context.Context, q models.AthleteQuery) ([]models.AthleteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AthleteProfile
	for _, p := range f.athletes {
		name := ""
		if p.Name != nil {
			name = *p.Name
		}
		if q.Name != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(q.Name)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := "", ""
		if out[i].Name != nil {
			ni = *out[i].Name
		}
		if out[j].Name != nil {
			nj = *out[j].Name
		}
		switch q.Sort {
		case "name":
			return ni < nj
		case "-name":
			return ni > nj
		case "-created_at":
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return page(out, q.Skip, q.Limit), nil
}

func (f fakeAthletes) ListByCoach(_ context.Context, coachUserID uuid.UUID, skip, limit int) ([]models.AthleteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AthleteProfile
	for _, p := range f.athletes {
		if p.CoachID != nil && *p.CoachID == coachUserID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, skip, limit), nil
}

func (f fakeAthletes) Update(_ context.Context, p *models.AthleteProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.athletes[p.ID]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "update athlete profile")
	}
	p.UpdatedAt = f.tick()
	cp := *p
	f.athletes[p.ID] = &cp
	return nil
}

type fakeCoaches struct{ *memDB }

func (f fakeCoaches) Create(_ context.Context, p *models.CoachProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.coaches {
		if existing.UserID == p.UserID {
			return errors.Wrap(apperr.ErrDuplicate, "create coach profile")
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt, p.UpdatedAt = f.tick(), f.tick()
	cp := *p
	f.coaches[p.ID] = &cp
	return nil
}

func (f fakeCoaches) GetByID(_ context.Context, id uuid.UUID) (*models.CoachProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.coaches[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get coach profile")
}

func (f fakeCoaches) GetByUserID(_ context.Context, userID uuid.UUID) (*models.CoachProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.coaches {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get coach profile by user")
}

func (f fakeCoaches) List(_ context.Context, skip, limit int) ([]models.CoachProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CoachProfile
	for _, p := range f.coaches {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, skip, limit), nil
}

func (f fakeCoaches) Update(_ context.Context, p *models.CoachProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.coaches[p.ID]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "update coach profile")
	}
	cp := *p
	f.coaches[p.ID] = &cp
	return nil
}

type fakeJumps struct{ *memDB }

func (f fakeJumps) Create(_ context.Context, j *models.Jump) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.jumps {
		if existing.AthleteID == j.AthleteID && existing.Date.Equal(j.Date.Time) {
			return errors.Wrap(apperr.ErrDuplicate, "create jump")
		}
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.CreatedAt, j.UpdatedAt = f.tick(), f.tick()
	cp := *j
	f.jumps[j.ID] = &cp
	return nil
}

func (f fakeJumps) GetByID(_ context.Context, id uuid.UUID) (*models.Jump, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j, ok := f.jumps[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get jump")
}

func (f fakeJumps) list(match func(*models.Jump) bool, flt models.JumpFilter) []models.Jump {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Jump
	for _, j := range f.jumps {
		if !match(j) {
			continue
		}
		if flt.From != nil && j.Date.Before(flt.From.Time) {
			continue
		}
		if flt.To != nil && j.Date.After(flt.To.Time) {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Date.After(out[k].Date.Time) })
	return page(out, flt.Skip, flt.Limit)
}

func (f fakeJumps) ListByAthlete(_ context.Context, athleteID uuid.UUID, flt models.JumpFilter) ([]models.Jump, error) {
	return f.list(func(j *models.Jump) bool { return j.AthleteID == athleteID }, flt), nil
}

func (f fakeJumps) ListAll(_ context.Context, flt models.JumpFilter) ([]models.Jump, error) {
	return f.list(func(*models.Jump) bool { return true }, flt), nil
}

func (f fakeJumps) Update(_ context.Context, j *models.Jump) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jumps[j.ID]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "update jump")
	}
	j.UpdatedAt = f.tick()
	cp := *j
	f.jumps[j.ID] = &cp
	return nil
}

func (f fakeJumps) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jumps[id]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "delete jump")
	}
	delete(f.jumps, id)
	return nil
}

type fakeMarks struct{ *memDB }

func (f fakeMarks) Create(_ context.Context, m *models.Mark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt, m.UpdatedAt = f.tick(), f.tick()
	cp := *m
	f.marks[m.ID] = &cp
	return nil
}

func (f fakeMarks) GetByID(_ context.Context, id uuid.UUID) (*models.Mark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.marks[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "get mark")
}

func (f fakeMarks) list(match func(*models.Mark) bool, flt models.MarkFilter) []models.Mark {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Mark
	for _, m := range f.marks {
		if !match(m) {
			continue
		}
		if flt.Event != "" && m.Event != flt.Event {
			continue
		}
		if flt.Type != "" && m.Type != flt.Type {
			continue
		}
		if flt.From != nil && m.Date.Before(flt.From.Time) {
			continue
		}
		if flt.To != nil && m.Date.After(flt.To.Time) {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Date.After(out[k].Date.Time) })
	return page(out, flt.Skip, flt.Limit)
}

func (f fakeMarks) ListByAthlete(_ context.Context, athleteID uuid.UUID, flt models.MarkFilter) ([]models.Mark, error) {
	return f.list(func(m *models.Mark) bool { return m.AthleteID == athleteID }, flt), nil
}

func (f fakeMarks) ListAll(_ context.Context, flt models.MarkFilter) ([]models.Mark, error) {
	return f.list(func(*models.Mark) bool { return true }, flt), nil
}

func (f fakeMarks) ListByEvent(ctx context.Context, athleteID uuid.UUID, event string) ([]models.Mark, error) {
	return f.ListByAthlete(ctx, athleteID, models.MarkFilter{Event: event})
}

func (f fakeMarks) Update(_ context.Context, m *models.Mark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.marks[m.ID]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "update mark")
	}
	m.UpdatedAt = f.tick()
	cp := *m
	f.marks[m.ID] = &cp
	return nil
}

func (f fakeMarks) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.marks[id]; !ok {
		return errors.Wrap(apperr.ErrNotFound, "delete mark")
	}
	delete(f.marks, id)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
