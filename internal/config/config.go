package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr      string
	DBPath          string
	GeminiAPIKey    string
	GeminiModel     string
	DefaultRadiusKm int
	SessionTTLHours int
	LogLevel        string
	LogFile         string
	TestMode        bool
}

func Load() *Config {
	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		DBPath:          getEnv("DB_PATH", "/data/carwise.db"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		DefaultRadiusKm: getEnvInt("DEFAULT_RADIUS_KM", 10),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 720),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
		TestMode:        os.Getenv("CARWISE_TEST_MODE") == "1",
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
