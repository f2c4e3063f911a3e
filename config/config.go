package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil {
			if os.IsNotExist(err) {
				log.Println("No .env file found, using system environment variables")
				return nil
			}
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	// All variables
	GO_ENV       string
	PORT         int
	DB_DRIVER    string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Redis Configuration
	REDIS_URL string
	// HTTP Security
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   time.Duration
	// Background jobs
	CRON_ENABLED  bool
	SEED_ON_START bool
}

// IsProduction reports whether the service runs with GO_ENV=production
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	rateLimitWindow, err := time.ParseDuration(os.Getenv("RATE_LIMIT_WINDOW"))
	if err != nil {
		rateLimitWindow = time.Minute
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		PORT:         port,
		DB_DRIVER:    getEnvOrDefault("DB_DRIVER", "gorm"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getEnvOrDefault("DB_HOST", "localhost"),
		DB_PORT:      getEnvOrDefault("DB_PORT", "5432"),
		DB_SSL_MODE:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Security
		ALLOWED_ORIGINS:     getEnvOrDefault("ALLOWED_ORIGINS", "*"),
		RATE_LIMIT_REQUESTS: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RATE_LIMIT_WINDOW:   rateLimitWindow,
		// Jobs
		CRON_ENABLED:  os.Getenv("CRON_ENABLED") != "false", // Default to enabled
		SEED_ON_START: os.Getenv("SEED_ON_START") == "true",
	}

	return envVariables, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
