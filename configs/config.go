package config

import (
	"os"
	"strconv"
)

type Config struct {
	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string

	TelegramBotToken string
	TgstatToken      string

	LinkedinClientID     string
	LinkedinClientSecret string
	LinkedinRedirectURI  string
	VKClientID           string
	VKClientSecret       string
	VKRedirectURI        string

	OpenAIKey    string
	AnthropicKey string
	GroqKey      string

	RedisURI     string
	PollInterval int // seconds between publisher ticks
	SecretKey    string
	CookieName   string
	FrontendURL  string
}

func LoadConfig() *Config {
	return &Config{
		SupabaseURL:          getEnv("SUPABASE_URL", ""),
		SupabaseKey:          getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseJWTSecret:    getEnv("SUPABASE_JWT_SECRET", ""),
		TelegramBotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TgstatToken:          getEnv("TGSTAT_TOKEN", ""),
		LinkedinClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedinClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedinRedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", ""),
		VKClientID:           getEnv("VK_CLIENT_ID", ""),
		VKClientSecret:       getEnv("VK_CLIENT_SECRET", ""),
		VKRedirectURI:        getEnv("VK_REDIRECT_URI", ""),
		OpenAIKey:            getEnv("OPENAI_API_KEY", ""),
		AnthropicKey:         getEnv("ANTHROPIC_API_KEY", ""),
		GroqKey:              getEnv("GROQ_API_KEY", ""),
		RedisURI:             getEnv("REDIS_URI", "localhost:6379"),
		PollInterval:         getEnvInt("POLL_INTERVAL", 30),
		SecretKey:            getEnv("SECRET_KEY", ""),
		CookieName:           getEnv("COOKIE_NAME", "vyud_session"),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
