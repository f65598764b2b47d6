package config

import (
	"os"
)

type Config struct {
	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	JWTSecret    string
	ShareBaseURL string
	GinMode      string
	Port         string
}

func Load() *Config {
	return &Config{
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBUser:       getEnv("DB_USER", "promanager"),
		DBPassword:   getEnv("DB_PASSWORD", "promanager"),
		DBName:       getEnv("DB_NAME", "pro_manager"),
		JWTSecret:    getEnv("JWT_SECRET", "default-secret-key-change-me"),
		ShareBaseURL: getEnv("SHARE_BASE_URL", "http://localhost:3000"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		Port:         getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
