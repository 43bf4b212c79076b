package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Mailer    MailerConfig
	Storage   StorageConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port    string
	Env     string
	BaseURL string
}

type DatabaseConfig struct {
	Driver   string // postgres | sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
	Path     string // sqlite only
}

type JWTConfig struct {
	Secret         string
	ExpiryHours    int
	CSRFTTL        time.Duration
	GoogleClientID string
}

type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type StorageConfig struct {
	SupabaseURL string
	SupabaseKey string
	Bucket      string
}

// Enabled reports whether poster uploads are configured.
func (s StorageConfig) Enabled() bool {
	return s.SupabaseURL != "" && s.SupabaseKey != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	CommentsPerSecond int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load đọc cấu hình từ biến môi trường. godotenv.Load() được gọi ở cmd.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			Env:     getEnv("APP_ENV", "development"),
			BaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "wildseries"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "Europe/Paris"),
			Path:     getEnv("DB_PATH", "wildseries.db"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", "change-me"),
			ExpiryHours:    getEnvInt("JWT_EXPIRY_HOURS", 24),
			CSRFTTL:        getEnvDuration("CSRF_TTL", time.Hour),
			GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		},
		Mailer: MailerConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_EMAIL"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("MAILER_FROM", "no-reply@wildseries.local"),
			To:       getEnv("MAILER_TO", "fanny-lemaitre-hermenier_student2021@wilder.school"),
		},
		Storage: StorageConfig{
			SupabaseURL: os.Getenv("SUPABASE_URL"),
			SupabaseKey: os.Getenv("SUPABASE_KEY"),
			Bucket:      getEnv("SUPABASE_BUCKET", "uploads"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		RateLimit: RateLimitConfig{
			CommentsPerSecond: getEnvInt("RATE_LIMIT_COMMENTS_PER_SEC", 1),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
