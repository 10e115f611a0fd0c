package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseKey       string
	SupabaseJWTSecret string
	StorageBucket     string
	// AdminEmails is the allowlist of e-mail addresses permitted into the
	// admin area. The identity provider only proves who the caller is.
	AdminEmails []string
	SiteBaseURL string
	FrontendURL string
	// Redis configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate limiting configuration
	RateLimitWindowSeconds  int
	RateLimitContactPerIP   int
	RateLimitTrackViewPerIP int
	RateLimitLoginThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignored elsewhere.
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Trailing slash would produce double slashes in auth URLs.
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:       getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", "blog-images"),
		AdminEmails:       splitList(getEnv("ADMIN_EMAILS", "admin@tescilofisi.com")),
		SiteBaseURL:       strings.TrimRight(getEnv("SITE_BASE_URL", "https://tescilofisi.com"), "/"),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactPerIP:   getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitTrackViewPerIP: getEnvInt("RATE_LIMIT_TRACK_VIEW_THRESHOLD", 30),
		RateLimitLoginThreshold: getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 5),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsAdminEmail reports whether email is on the admin allowlist.
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
