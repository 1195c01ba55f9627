package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Jobs     JobConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
	JWKSURL   string
	// KeyCacheTTLSeconds bounds how long the remote key set is reused
	// before a refresh.
	KeyCacheTTLSeconds int
}

type AIConfig struct {
	BaseURL      string
	APIKey       string
	TaggingModel string
	MoodModel    string
}

type JobConfig struct {
	TopicName string
	// RetryDelaySeconds is the fixed redelivery delay after a job error.
	RetryDelaySeconds int
	// RecentTagLimit caps the recently-used tag names handed to the
	// tagging prompt.
	RecentTagLimit int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			JWKSURL:            getEnv("AUTH_JWKS_URL", ""),
			KeyCacheTTLSeconds: getEnvAsInt("AUTH_KEY_CACHE_TTL_SECONDS", 600),
		},
		Ai: AIConfig{
			BaseURL:      getEnv("AI_BASE_URL", "http://localhost:11434"),
			APIKey:       getEnv("AI_API_KEY", ""),
			TaggingModel: getEnv("AI_TAGGING_MODEL", "gpt-4o-mini"),
			MoodModel:    getEnv("AI_MOOD_MODEL", "gpt-4o-mini"),
		},
		Jobs: JobConfig{
			TopicName:         getEnv("ANALYZE_THOUGHT_TOPIC_NAME", "ANALYZE_THOUGHT"),
			RetryDelaySeconds: getEnvAsInt("JOB_RETRY_DELAY_SECONDS", 15),
			RecentTagLimit:    getEnvAsInt("JOB_RECENT_TAG_LIMIT", 50),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
