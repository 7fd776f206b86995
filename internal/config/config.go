package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort string
	GinMode    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AccessSecretKey          string
	RefreshSecretKey         string
	AccessTokenExpireMinutes int
	RefreshTokenExpireDays   int
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "kanban"),
		DBPassword: getEnv("DB_PASSWORD", "kanban"),
		DBName:     getEnv("DB_NAME", "kanban_board"),

		AccessSecretKey:          getEnv("ACCESS_SECRET_KEY", "access-secret-change-me"),
		RefreshSecretKey:         getEnv("REFRESH_SECRET_KEY", "refresh-secret-change-me"),
		AccessTokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15),
		RefreshTokenExpireDays:   getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
