package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Civic    CivicConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	FeedLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
	OtelSampleRatio    float64
	MetricsEnabled     bool
	// DraftRateLimit caps drafting requests per caller per minute.
	DraftRateLimit int
}

type DatabaseConfig struct {
	// Connection is a Postgres DSN, or "sqlite://<path>" for a local file.
	Connection string
}

type SMTPConfig struct {
	Host         string
	Port         int
	Email        string
	Password     string
	SenderName   string
	SupportInbox string
}

type APIKeys struct {
	Geoapify     string
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider   string // "gemini", "ollama" or "huggingface"
	LLMModel      string
	DraftModel    string
	GeminiBaseURL string
	OllamaBaseURL string
	Timeout       time.Duration
}

type CivicConfig struct {
	LegislatorMirrors []string
	DatasetCacheTTL   time.Duration
	GuestTTL          time.Duration
	DraftIdleTTL      time.Duration
	MaxAttachmentSize int
	DonationURL       string
	SubscriptionURL   string
	WebformFallback   string
}

type AuthConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			FeedLogFilePath:    getEnv("FEED_LOG_FILE_PATH", "logs/activity_feed.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OtelSampleRatio:    getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
			MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),
			DraftRateLimit:     getEnvAsInt("DRAFT_RATE_LIMIT", 60),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", "sqlite://civic_bridge.db"),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", ""),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Email:        getEnv("SMTP_EMAIL", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			SenderName:   getEnv("SMTP_SENDER_NAME", "Civic Bridge"),
			SupportInbox: getEnv("SUPPORT_INBOX", "support@civicbridge.org"),
		},
		Keys: APIKeys{
			Geoapify:     getEnv("GEOAPIFY_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-2.5-flash"),
			DraftModel:    getEnv("LLM_DRAFT_MODEL", "gemini-2.5-pro"),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Civic: CivicConfig{
			LegislatorMirrors: getEnvAsList("LEGISLATOR_MIRRORS", nil),
			DatasetCacheTTL:   getEnvAsDuration("LEGISLATOR_CACHE_TTL", 12*time.Hour),
			GuestTTL:          getEnvAsDuration("GUEST_TTL", 30*24*time.Hour),
			DraftIdleTTL:      getEnvAsDuration("DRAFT_IDLE_TTL", 2*time.Hour),
			MaxAttachmentSize: getEnvAsInt("MAX_ATTACHMENT_BYTES", 5*1024*1024),
			DonationURL:       getEnv("DONATION_URL", "https://buy.stripe.com/mock_donation"),
			SubscriptionURL:   getEnv("SUBSCRIPTION_URL", "https://buy.stripe.com/mock_subscription"),
			WebformFallback:   getEnv("WEBFORM_FALLBACK_URL", "https://www.usa.gov/elected-officials"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			TokenTTL:           getEnvAsDuration("JWT_TTL", 72*time.Hour),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/api/auth/google/callback"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "24h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(strValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
