package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Chat     ChatConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CORSConfig struct {
	AllowOrigins string
}

type ChatConfig struct {
	// PageSize is how many products a section listing shows per turn.
	PageSize int
	// SupportFormURL is handed out for agent escalation and contact requests.
	SupportFormURL string
	// ShopBaseURL is the storefront root used in section links.
	ShopBaseURL string
	// TypingMinDelay/TypingMaxDelay bound the simulated typing pause in the console client.
	TypingMinDelay time.Duration
	TypingMaxDelay time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine: plain environment variables work for Docker/K8s.

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	pageSize, _ := strconv.Atoi(getEnv("CHAT_PAGE_SIZE", "10"))
	typingMin, _ := strconv.Atoi(getEnv("CHAT_TYPING_MIN_MS", "800"))
	typingMax, _ := strconv.Atoi(getEnv("CHAT_TYPING_MAX_MS", "2000"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "shopchat"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5500,http://127.0.0.1:5500,http://localhost:3000,http://127.0.0.1:3000"),
		},
		Chat: ChatConfig{
			PageSize:       pageSize,
			SupportFormURL: getEnv("CHAT_SUPPORT_FORM_URL", "https://example.com/support-form"),
			ShopBaseURL:    getEnv("CHAT_SHOP_BASE_URL", "https://your.site/shop"),
			TypingMinDelay: time.Duration(typingMin) * time.Millisecond,
			TypingMaxDelay: time.Duration(typingMax) * time.Millisecond,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
