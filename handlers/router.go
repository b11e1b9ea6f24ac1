package handlers

import (
	"net/http"

	"athletics-backend/apperr"
	"athletics-backend/auth"
	"athletics-backend/middleware"
	"athletics-backend/models"
	"athletics-backend/respond"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Deps всё, что нужно для сборки роутера
type Deps struct {
	Users    UserStore
	Athletes AthleteStore
	Coaches  CoachStore
	Jumps    JumpStore
	Marks    MarkStore
	DB       Pinger

	JWT         *auth.JWTService
	Limiter     *middleware.RateLimiter
	Log         *logrus.Logger
	CORSOrigins []string
	LoginRPS    float64
	LoginBurst  int
}

// NewRouter собирает маршруты. CORS оборачивает роутер целиком: preflight
// отвечается до маршрутизации.
func NewRouter(d Deps) http.Handler {
	userHandler := NewUserHandler(d.Users, d.JWT)
	athleteHandler := NewAthleteHandler(d.Athletes, d.Users)
	coachHandler := NewCoachHandler(d.Coaches, athleteHandler)
	jumpHandler := NewJumpHandler(d.Jumps, d.Athletes)
	markHandler := NewMarkHandler(d.Marks, d.Athletes)
	authMiddleware := middleware.NewAuthMiddleware(d.JWT, d.Users)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Добавление middleware для всех маршрутов
	r.Use(middleware.RequestLogger(d.Log))

	// Публичные маршруты (без API префикса)
	r.HandleFunc("/", rootHandler).Methods("GET")
	r.Handle("/health", NewHealthHandler(d.DB)).Methods("GET")

	// Публичные маршруты API (без аутентификации)
	public := r.PathPrefix("/api/v1").Subrouter()
	limited := d.Limiter.Limit("login", d.LoginBurst, d.LoginRPS)
	public.Handle("/users/register", limited(http.HandlerFunc(userHandler.Register))).Methods("POST")
	public.Handle("/users/login", limited(http.HandlerFunc(userHandler.Login))).Methods("POST")
	public.Handle("/users/token", limited(http.HandlerFunc(userHandler.Token))).Methods("POST")

	// Защищенные маршруты API
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.AuthMiddleware)

	athleteOnly := middleware.Guard(middleware.RequireRole(models.RoleAthlete))
	coachOnly := middleware.Guard(middleware.RequireRole(models.RoleCoach))
	guarded := func(g mux.MiddlewareFunc, h http.HandlerFunc) http.Handler { return g(h) }

	athleteOwner := middleware.OwnerFromStore("athlete_id", "Athlete not found", profileOwner(d.Athletes))
	jumpOwner := middleware.OwnerFromStore("id", "Jump not found", jumpHandler.owner)
	markOwner := middleware.OwnerFromStore("id", "Mark not found", markHandler.owner)

	// Пользователи
	api.HandleFunc("/users/me", userHandler.Me).Methods("GET")
	api.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT")
	api.HandleFunc("/users/me", userHandler.DeleteMe).Methods("DELETE")
	api.Handle("/users/{id}", guarded(middleware.Guard(middleware.Self("id", d.Users)), userHandler.Get)).Methods("GET")

	// Атлеты
	api.Handle("/athletes", guarded(athleteOnly, athleteHandler.Create)).Methods("POST")
	api.Handle("/athletes", guarded(coachOnly, athleteHandler.List)).Methods("GET")
	api.Handle("/athletes/me", guarded(athleteOnly, athleteHandler.Me)).Methods("GET")
	api.Handle("/athletes/me", guarded(athleteOnly, athleteHandler.UpdateMe)).Methods("PUT")
	api.Handle("/athletes/{athlete_id}", guarded(middleware.Guard(
		middleware.Owned(athleteOwner, middleware.ReadAccess)), athleteHandler.Get)).Methods("GET")

	// Тренеры
	api.Handle("/coaches", guarded(coachOnly, coachHandler.Create)).Methods("POST")
	api.HandleFunc("/coaches", coachHandler.List).Methods("GET")
	api.Handle("/coaches/me", guarded(coachOnly, coachHandler.Me)).Methods("GET")
	api.Handle("/coaches/me", guarded(coachOnly, coachHandler.UpdateMe)).Methods("PUT")
	api.Handle("/coaches/me/athletes", guarded(coachOnly, coachHandler.MyAthletes)).Methods("GET")
	api.HandleFunc("/coaches/{id}", coachHandler.Get).Methods("GET")

	// Прыжки
	readAthlete := middleware.Guard(middleware.Owned(athleteOwner, middleware.ReadAccess))
	api.Handle("/jumps", guarded(athleteOnly, jumpHandler.Create)).Methods("POST")
	api.Handle("/jumps", guarded(coachOnly, jumpHandler.List)).Methods("GET")
	api.Handle("/jumps/me", guarded(athleteOnly, jumpHandler.Me)).Methods("GET")
	api.Handle("/jumps/me/statistics", guarded(athleteOnly, jumpHandler.MyStatistics)).Methods("GET")
	api.Handle("/jumps/me/best", guarded(athleteOnly, jumpHandler.MyBest)).Methods("GET")
	api.Handle("/jumps/athlete/{athlete_id}", guarded(readAthlete, jumpHandler.ByAthlete)).Methods("GET")
	api.Handle("/jumps/athlete/{athlete_id}/statistics", guarded(readAthlete, jumpHandler.AthleteStatistics)).Methods("GET")
	api.Handle("/jumps/{id}", guarded(middleware.Guard(
		middleware.Owned(jumpOwner, middleware.ReadAccess)), jumpHandler.Get)).Methods("GET")
	api.Handle("/jumps/{id}", guarded(middleware.Guard(
		middleware.RequireRole(models.RoleAthlete),
		middleware.Owned(jumpOwner, middleware.WriteAccess)), jumpHandler.Update)).Methods("PUT")
	api.Handle("/jumps/{id}", guarded(middleware.Guard(
		middleware.RequireRole(models.RoleAthlete),
		middleware.Owned(jumpOwner, middleware.WriteAccess)), jumpHandler.Delete)).Methods("DELETE")

	// Результаты
	api.Handle("/marks", guarded(athleteOnly, markHandler.Create)).Methods("POST")
	api.Handle("/marks", guarded(coachOnly, markHandler.List)).Methods("GET")
	api.Handle("/marks/me", guarded(athleteOnly, markHandler.Me)).Methods("GET")
	api.Handle("/marks/me/statistics", guarded(athleteOnly, markHandler.MyStatistics)).Methods("GET")
	api.Handle("/marks/me/records", guarded(athleteOnly, markHandler.MyRecords)).Methods("GET")
	api.Handle("/marks/athlete/{athlete_id}", guarded(readAthlete, markHandler.ByAthlete)).Methods("GET")
	api.Handle("/marks/athlete/{athlete_id}/records", guarded(readAthlete, markHandler.AthleteRecords)).Methods("GET")
	api.Handle("/marks/{id}", guarded(middleware.Guard(
		middleware.Owned(markOwner, middleware.ReadAccess)), markHandler.Get)).Methods("GET")
	api.Handle("/marks/{id}", guarded(middleware.Guard(
		middleware.RequireRole(models.RoleAthlete),
		middleware.Owned(markOwner, middleware.WriteAccess)), markHandler.Update)).Methods("PUT")
	api.Handle("/marks/{id}", guarded(middleware.Guard(
		middleware.RequireRole(models.RoleAthlete),
		middleware.Owned(markOwner, middleware.WriteAccess)), markHandler.Delete)).Methods("DELETE")

	return middleware.CORS(d.CORSOrigins)(r)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, apperr.NotFound("Not Found"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusMethodNotAllowed, respond.ErrorBody{Detail: "Method Not Allowed", Code: "method_not_allowed"})
}
