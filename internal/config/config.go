package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Collections names every MongoDB collection the API touches.
type Collections struct {
	Jobs                string
	Prefs               string
	SavedJobs           string
	JobMetrics          string
	PendingPosts        string
	FailedNotifications string
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr           string
	MongoURI       string
	MongoDatabase  string
	Collections    Collections
	Timeout        time.Duration
	ServerLog      *log.Logger
	JWTConfigs     []JWTConfig
	JWTAudience    string
	Superadmins    []string
	PublicOrigin   string
	AllowedOrigins []string

	StripeSecretKey    string
	CheckoutUnitAmount int64
	CheckoutCurrency   string

	ResendAPIKey    string
	ResendEndpoint  string
	AdminEmails     []string
	NotifyFromName  string
	NotifyFromEmail string
	NotifyTimeout   time.Duration

	RedisURL         string
	JobEventsChannel string

	DraftDigestSchedule string
	ArchiveDays         int
	RateLimitRPS        float64
	RateLimitBurst      int
}

// Load reads environment variables and returns a fully populated Config.
// 開発環境では .env を先に読み込む。存在しなくてもエラーにしない。
func Load() Config {
	_ = godotenv.Load()

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "fizzyjuice-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_FIREBASE_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: strings.TrimSpace(os.Getenv("AUTH_FIREBASE_JWT_ISSUER")),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secrets not configured. Set AUTH_JWT_SECRET or AUTH_FIREBASE_JWT_SECRET.")
	}

	cfg := Config{
		Addr:          envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:      envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase: envOrDefault("MONGO_DB", "fizzyjuice"),
		Collections: Collections{
			Jobs:                envOrDefault("JOB_COLLECTION", "jobs"),
			Prefs:               envOrDefault("PREFS_COLLECTION", "prefs"),
			SavedJobs:           envOrDefault("SAVED_JOB_COLLECTION", "saved_jobs"),
			JobMetrics:          envOrDefault("JOB_METRICS_COLLECTION", "job_metrics"),
			PendingPosts:        envOrDefault("PENDING_POST_COLLECTION", "pending_posts"),
			FailedNotifications: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		},
		Timeout:        parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		ServerLog:      log.New(os.Stdout, "[fizzyjuice-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:     jwtConfigs,
		JWTAudience:    strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		Superadmins:    parseList("SUPERADMIN_EMAILS", nil),
		PublicOrigin:   strings.TrimRight(envOrDefault("PUBLIC_ORIGIN", "http://localhost:5173"), "/"),
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),

		StripeSecretKey:    strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		CheckoutUnitAmount: int64(parseInt("CHECKOUT_UNIT_AMOUNT", 1000)),
		CheckoutCurrency:   strings.ToLower(envOrDefault("CHECKOUT_CURRENCY", "gbp")),

		ResendAPIKey:    strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		ResendEndpoint:  envOrDefault("RESEND_ENDPOINT", "https://api.resend.com"),
		AdminEmails:     parseList("ADMIN_NOTIFICATION_EMAILS", nil),
		NotifyFromName:  envOrDefault("NOTIFY_FROM_NAME", "Fizzy Juice"),
		NotifyFromEmail: envOrDefault("NOTIFY_FROM_EMAIL", "no-reply@fizzyjuice.uk"),
		NotifyTimeout:   parseDuration("NOTIFY_TIMEOUT", 5*time.Second),

		RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
		JobEventsChannel: envOrDefault("JOB_EVENTS_CHANNEL", "fizzyjuice.jobs"),

		DraftDigestSchedule: scheduleOrDefault("DRAFT_DIGEST_SCHEDULE", "@every 24h"),
		ArchiveDays:         parseInt("ARCHIVE_THRESHOLD_DAYS", 14),
		RateLimitRPS:        parseFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:      parseInt("RATE_LIMIT_BURST", 20),
	}

	cfg.ServerLog.Printf("loaded config: db=%q publicOrigin=%q stripe=%t resend=%t redis=%t digest=%q",
		cfg.MongoDatabase, cfg.PublicOrigin, cfg.StripeSecretKey != "", cfg.ResendAPIKey != "", cfg.RedisURL != "", cfg.DraftDigestSchedule)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// scheduleOrDefault distinguishes unset (fallback) from set-but-empty (disabled).
func scheduleOrDefault(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(v)
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseInt(key string, fallback int) int {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func parseFloat(key string, fallback float64) float64 {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
