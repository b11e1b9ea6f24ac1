package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"athletics-backend/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // драйвер PostgreSQL
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB держит один пул соединений lib/pq и две обёртки над ним:
// sqlx для журналов прыжков и результатов, GORM для пользователей и профилей.
type DB struct {
	SQL  *sql.DB
	X    *sqlx.DB
	Gorm *gorm.DB
}

func Open(cfg *config.Config, log *logrus.Logger) (*DB, error) {
	// Сначала используем стандартный database/sql
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// Затем оборачиваем в sqlx
	dbx := sqlx.NewDb(sqlDB, "postgres")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbx.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	// GORM работает поверх того же пула
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error initializing gorm: %w", err)
	}

	log.Info("✅ Successfully connected to PostgreSQL")
	return &DB{SQL: sqlDB, X: dbx, Gorm: gdb}, nil
}

func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	if err := db.SQL.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// Ping используется health-эндпоинтом
func (db *DB) Ping(ctx context.Context) error {
	return db.X.PingContext(ctx)
}
