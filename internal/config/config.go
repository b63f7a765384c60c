package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minJWTSecretBytes = 32

// Config holds all settings for the service. It is loaded once at startup
// and passed to the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	Port               string
	DB                 DBConfig
	JWTSecret          string
	TokenTTL           time.Duration
	AdminClearPassword string
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment variables: %v", err)
	}

	cfg := Config{
		Port: getEnvOrDefault("PORT", "8080"),
		DB: DBConfig{
			Host:            getEnvOrDefault("DB_HOST", "localhost"),
			Port:            getEnvOrDefault("DB_PORT", "5432"),
			User:            getEnvOrDefault("DB_USER", "postgres"),
			Password:        getEnvOrDefault("DB_PASSWORD", "password"),
			Name:            getEnvOrDefault("DB_NAME", "chillbills"),
			SSLMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntEnvOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnvOrDefault("DB_MAX_IDLE_CONNS", 25),
			ConnMaxIdleTime: time.Duration(getIntEnvOrDefault("DB_CONN_MAX_IDLE_MINUTES", 5)) * time.Minute,
			ConnMaxLifetime: time.Duration(getIntEnvOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		},
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET_KEY")),
		TokenTTL:           time.Duration(getIntEnvOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		AdminClearPassword: strings.TrimSpace(os.Getenv("ADMIN_CLEAR_PASSWORD")),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET_KEY is required")
	}
	if len(cfg.JWTSecret) < minJWTSecretBytes {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY must be at least %d characters", minJWTSecretBytes)
	}

	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}

	return value
}
