package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"athletics-backend/apperr"
	"athletics-backend/auth"
	"athletics-backend/models"
	"athletics-backend/respond"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type fakeUsers map[uuid.UUID]*models.User

func (f fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func newUser(role string, active bool) *models.User {
	return &models.User{ID: uuid.New(), Email: role + "@example.com", Role: role, IsActive: active}
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	active := newUser(models.RoleAthlete, true)
	inactive := newUser(models.RoleCoach, false)
	ghost := newUser(models.RoleAthlete, true)
	users := fakeUsers{active.ID: active, inactive.ID: inactive}

	token := func(u *models.User) string {
		tok, _, err := jwtService.GenerateToken(u)
		if err != nil {
			t.Fatal(err)
		}
		return tok
	}

	var seen *models.User
	handler := NewAuthMiddleware(jwtService, users).AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CurrentUser(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token(active), http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"unknown user", "Bearer " + token(ghost), http.StatusUnauthorized},
		{"inactive user", "Bearer " + token(inactive), http.StatusBadRequest},
		{"ok", "Bearer " + token(active), http.StatusOK},
		{"lowercase scheme", "bearer " + token(active), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK && (seen == nil || seen.ID != active.ID) {
				t.Errorf("CurrentUser() = %v, want the token's user", seen)
			}
		})
	}
}

// serveGuarded runs the guard behind a router so mux vars are populated.
func serveGuarded(caller *models.User, path string, rules ...Rule) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/things/{id}", Guard(rules...)(okHandler))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if caller != nil {
		req = req.WithContext(SetCurrentUser(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGuard(t *testing.T) {
	owner := newUser(models.RoleAthlete, true)
	other := newUser(models.RoleAthlete, true)
	coach := newUser(models.RoleCoach, true)

	thingID := uuid.New()
	lookup := OwnerFromStore("id", "Thing not found", func(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
		if id != thingID {
			return uuid.Nil, apperr.ErrNotFound
		}
		return owner.ID, nil
	})
	existing := "/things/" + thingID.String()
	missing := "/things/" + uuid.NewString()

	tests := []struct {
		name   string
		caller *models.User
		path   string
		rules  []Rule
		want   int
	}{
		{"no caller", nil, existing, nil, http.StatusUnauthorized},
		{"role ok", coach, existing, []Rule{RequireRole(models.RoleCoach)}, http.StatusOK},
		{"role mismatch", owner, existing, []Rule{RequireRole(models.RoleCoach)}, http.StatusForbidden},
		{"read owner", owner, existing, []Rule{Owned(lookup, ReadAccess)}, http.StatusOK},
		{"read coach", coach, existing, []Rule{Owned(lookup, ReadAccess)}, http.StatusOK},
		{"read other athlete", other, existing, []Rule{Owned(lookup, ReadAccess)}, http.StatusForbidden},
		{"write owner", owner, existing, []Rule{Owned(lookup, WriteAccess)}, http.StatusOK},
		{"write coach", coach, existing, []Rule{Owned(lookup, WriteAccess)}, http.StatusForbidden},
		{"missing before forbidden", other, missing, []Rule{Owned(lookup, ReadAccess)}, http.StatusNotFound},
		{"invalid id", owner, "/things/not-a-uuid", []Rule{Owned(lookup, ReadAccess)}, http.StatusNotFound},
		{"first failing rule wins", coach, existing,
			[]Rule{RequireRole(models.RoleAthlete), Owned(lookup, WriteAccess)}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveGuarded(tt.caller, tt.path, tt.rules...)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestOwnerLookupPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	lookup := OwnerFromStore("id", "Thing not found", func(context.Context, uuid.UUID) (uuid.UUID, error) {
		return uuid.Nil, boom
	})
	rec := serveGuarded(newUser(models.RoleCoach, true), "/things/"+uuid.NewString(), Owned(lookup, ReadAccess))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSelf(t *testing.T) {
	me := newUser(models.RoleAthlete, true)
	other := newUser(models.RoleAthlete, true)
	coach := newUser(models.RoleCoach, true)
	users := fakeUsers{me.ID: me, other.ID: other, coach.ID: coach}

	rule := Self("id", users)
	tests := []struct {
		name   string
		caller *models.User
		target uuid.UUID
		want   int
	}{
		{"self", me, me.ID, http.StatusOK},
		{"coach", coach, me.ID, http.StatusOK},
		{"other athlete", other, me.ID, http.StatusForbidden},
		{"unknown user", other, uuid.New(), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveGuarded(tt.caller, "/things/"+tt.target.String(), rule)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jumps", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/jumps", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin for unknown origin = %q", got)
	}

	rec = httptest.NewRecorder()
	CORS([]string{"*"})(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestRequestLoggerStoresEntry(t *testing.T) {
	log := logrus.New()
	log.Out = httptest.NewRecorder()

	var entry logrus.FieldLogger
	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry = respond.Logger(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set")
	}
	e, ok := entry.(*logrus.Entry)
	if !ok {
		t.Fatalf("logger in context = %T, want *logrus.Entry", entry)
	}
	if e.Data["http.req.path"] != "/health" {
		t.Errorf("entry fields = %v", e.Data)
	}
}

func TestRateLimiter(t *testing.T) {
	log := logrus.New()
	log.Out = httptest.NewRecorder()

	var nilLimiter *RateLimiter
	rec := httptest.NewRecorder()
	nilLimiter.Limit("login", 5, 1)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("nil limiter status = %d", rec.Code)
	}

	remaining := 2
	limiter := newRateLimiter(func(_ context.Context, key string, _ int, _ float64) (bool, error) {
		if key != "login:10.0.0.1" {
			t.Errorf("key = %q", key)
		}
		remaining--
		return remaining >= 0, nil
	}, log)

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.1")
		rec := httptest.NewRecorder()
		limiter.Limit("login", 2, 1)(okHandler).ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	log := logrus.New()
	log.Out = httptest.NewRecorder()

	calls := 0
	limiter := newRateLimiter(func(context.Context, string, int, float64) (bool, error) {
		calls++
		return false, errors.New("redis: connection refused")
	}, log)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		limiter.Limit("login", 5, 1)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200 when redis is down", i, rec.Code)
		}
	}
	if calls >= 10 {
		t.Errorf("breaker never opened, redis called %d times", calls)
	}
}
