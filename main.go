package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"athletics-backend/auth"
	"athletics-backend/config"
	"athletics-backend/database"
	"athletics-backend/handlers"
	"athletics-backend/middleware"
	"athletics-backend/repository"
	"athletics-backend/respond"

	"github.com/sirupsen/logrus"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ Error loading configuration: %v", err)
	}

	log := config.NewLogger(cfg)
	respond.SetFallback(log)
	log.Info("🚀 Starting Athletics Backend Server...")
	log.Infof("📋 Configuration loaded: Server Port %s", cfg.ServerPort)

	if cfg.UsingDefaultJWT {
		log.Warn("⚠️ JWT_SECRET is not set, using the development default. Do not run like this in production")
	}

	// Инициализация подключения к базе данных
	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatalf("❌ Error initializing database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.SQL, log); err != nil {
		log.Fatalf("❌ Error running migrations: %v", err)
	}

	// Инициализация JWT сервиса
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	users := repository.NewUserStore(db.Gorm)
	if cfg.SeedData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		seedIfEmpty(ctx, users, func(ctx context.Context) ([]database.SeedAccount, error) {
			return database.Seed(ctx, db, log)
		}, log)
		cancel()
	}

	router := handlers.NewRouter(handlers.Deps{
		Users:       users,
		Athletes:    repository.NewAthleteStore(db.Gorm),
		Coaches:     repository.NewCoachStore(db.Gorm),
		Jumps:       repository.NewJumpStore(db.X),
		Marks:       repository.NewMarkStore(db.X),
		DB:          db,
		JWT:         jwtService,
		Limiter:     middleware.NewRateLimiter(cfg.RedisAddr, log),
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		LoginRPS:    cfg.LoginRateLimit,
		LoginBurst:  cfg.LoginRateBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("✅ Server successfully started on %s", srv.Addr)
		log.Infof("🌐 Available at: http://localhost%s", srv.Addr)
		log.Infof("🔐 JWT Expiry: %d hours", cfg.JWTExpiry)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("❌ Graceful shutdown failed: %v", err)
	}
	log.Info("👋 Server stopped")
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type seedFunc func(ctx context.Context) ([]database.SeedAccount, error)

// seedIfEmpty заполняет пустую базу демо-данными, возвращает true если seed выполнялся
func seedIfEmpty(ctx context.Context, users userCounter, seed seedFunc, log logrus.FieldLogger) bool {
	count, err := users.Count(ctx)
	if err != nil {
		log.Errorf("❌ Error counting users: %v", err)
		return false
	}
	if count > 0 {
		log.Infof("🌱 Database already has %d users, skipping seed", count)
		return false
	}

	accounts, err := seed(ctx)
	if err != nil {
		log.Errorf("❌ Error seeding demo data: %v", err)
		return false
	}
	for _, acc := range accounts {
		log.WithFields(logrus.Fields{"email": acc.Email, "role": acc.Role}).Info("👤 Demo account ready")
	}
	return true
}
