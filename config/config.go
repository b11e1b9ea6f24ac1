package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	ServerPort  string   `yaml:"server_port"`
	DatabaseURL string   `yaml:"database_url"`
	DBHost      string   `yaml:"db_host"`
	DBPort      int      `yaml:"db_port"`
	DBUser      string   `yaml:"db_user"`
	DBPassword  string   `yaml:"db_password"`
	DBName      string   `yaml:"db_name"`
	DBSSLMode   string   `yaml:"db_sslmode"`
	JWTSecret   string   `yaml:"jwt_secret"`
	JWTExpiry   int      `yaml:"jwt_expiry"` // в часах
	CORSOrigins []string `yaml:"cors_origins"`

	RedisAddr       string  `yaml:"redis_addr"`
	LoginRateLimit  float64 `yaml:"ratelimit_login_rps"`
	LoginRateBurst  int     `yaml:"ratelimit_login_burst"`
	LogLevel        string  `yaml:"log_level"`
	LogFormat       string  `yaml:"log_format"`
	SeedData        bool    `yaml:"seed_data"`
	UsingDefaultJWT bool    `yaml:"-"`
}

func defaults() *Config {
	return &Config{
		ServerPort:     "8000",
		DBHost:         "localhost",
		DBPort:         5432,
		DBUser:         "postgres",
		DBPassword:     "postgres",
		DBName:         "athletics_db",
		DBSSLMode:      "disable",
		JWTSecret:      DefaultJWTSecret,
		JWTExpiry:      168,
		CORSOrigins:    []string{"*"},
		LoginRateLimit: 1,
		LoginRateBurst: 5,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML файл из
// CONFIG_FILE (если задан), затем переменные окружения.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnvAsInt("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSLMODE", cfg.DBSSLMode)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTExpiry = getEnvAsInt("JWT_EXPIRY", cfg.JWTExpiry)
	cfg.CORSOrigins = getEnvAsList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.LoginRateLimit = getEnvAsFloat("RATELIMIT_LOGIN_RPS", cfg.LoginRateLimit)
	cfg.LoginRateBurst = getEnvAsInt("RATELIMIT_LOGIN_BURST", cfg.LoginRateBurst)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.SeedData = getEnvAsBool("SEED_DATA", cfg.SeedData)

	if cfg.JWTExpiry <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY must be positive, got %d", cfg.JWTExpiry)
	}

	// Предупреждаем о небезопасном секрете по умолчанию
	cfg.UsingDefaultJWT = cfg.JWTSecret == DefaultJWTSecret || cfg.JWTSecret == ""
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// DSN строка подключения для lib/pq. DATABASE_URL имеет приоритет.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
