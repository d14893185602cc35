package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port string
	Env  string

	DatabaseURL string

	JWTSecret          string
	JWTRefreshSecret   string
	JWTAccessExpiry    time.Duration
	JWTRefreshExpiry   time.Duration
	ResetTokenLifetime time.Duration

	// ClientURLs is the CORS allow-list; the first entry is used to build reset links.
	ClientURLs []string

	BrevoAPIKey      string
	BrevoSenderEmail string
	BrevoSenderName  string
	BrevoBaseURL     string

	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3PublicURL string

	FirebaseCredentials string
	ReminderInterval    time.Duration

	BoardDeleteCascade bool
	MaxUploadSize      int64
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("APP_ENV", EnvDevelopment),
		DatabaseURL:         databaseURL(),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTRefreshSecret:    os.Getenv("JWT_REFRESH_SECRET"),
		JWTAccessExpiry:     getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		JWTRefreshExpiry:    getDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		ResetTokenLifetime:  time.Hour,
		ClientURLs:          splitList(getEnv("CLIENT_URL", "http://localhost:3000")),
		BrevoAPIKey:         os.Getenv("BREVO_API_KEY"),
		BrevoSenderEmail:    os.Getenv("BREVO_SENDER_EMAIL"),
		BrevoSenderName:     getEnv("BREVO_SENDER_NAME", "TaskPro"),
		BrevoBaseURL:        getEnv("BREVO_BASE_URL", "https://api.brevo.com/v3"),
		S3Bucket:            os.Getenv("S3_BUCKET"),
		S3Region:            getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:         os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:         os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:          os.Getenv("S3_ENDPOINT"),
		S3PublicURL:         os.Getenv("S3_PUBLIC_URL"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		ReminderInterval:    getDuration("REMINDER_INTERVAL", time.Minute),
		BoardDeleteCascade:  getBool("BOARD_DELETE_CASCADE", false),
		MaxUploadSize:       getInt64("MAX_UPLOAD_SIZE", 5<<20),
	}
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.JWTRefreshSecret == "" {
		errs = append(errs, errors.New("JWT_REFRESH_SECRET is not set"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL or DB_HOST is not set"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// ClientBaseURL returns the first configured client origin without a trailing slash.
func (c *Config) ClientBaseURL() string {
	if len(c.ClientURLs) == 0 {
		return "http://localhost:3000"
	}
	return strings.TrimRight(c.ClientURLs[0], "/")
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "taskpro"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// ParseDuration accepts Go duration strings plus a plain day suffix ("7d").
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
