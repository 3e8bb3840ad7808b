package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	JWTSecret      string        // Required: HMAC secret for access tokens
	TokenIssuer    string        // Issuer claim for tokens (default: folio)
	TokenTTL       time.Duration // Access token lifetime (default: 24h)
	BootstrapToken string        // Optional: enables the bootstrap endpoint while no users exist

	DatabaseURL   string // sqlite file path, or a mongodb:// URI (default: folio.db)
	MongoDatabase string // Database name when DatabaseURL is a mongo URI (default: folio)
	PepperFile    string // Path to file containing pepper for password hashing (default: ./pepper)

	StorageBackend  string        // local or s3 (default: local)
	MediaDir        string        // Local backend root (default: ./Media)
	MediaURLPrefix  string        // URL prefix the local backend is served under (default: /api/Media)
	DefaultImageURL string        // Image every new user and content item starts with
	StorageTimeout  time.Duration // Deadline for a single storage call (default: 10s)

	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3PublicURL    string
	S3UsePathStyle bool

	CORSAllowedOrigins []string      // Browser origins allowed to call the API
	LoginRateWindow    time.Duration // Login rate limit window (default: 15m)
	LoginRateMax       int           // Login attempts per window and IP (default: 10)
	PageSize           int           // Content list page size (default: 5)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	return Config{
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenIssuer:    getEnvOrDefault("TOKEN_ISSUER", "folio"),
		TokenTTL:       getEnvDurationOrDefault("TOKEN_TTL", 24*time.Hour),
		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"),

		DatabaseURL:   getEnvOrDefault("DATABASE_URL", "folio.db"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "folio"),
		PepperFile:    getEnvOrDefault("PEPPER_FILE", "pepper"),

		StorageBackend: strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", StorageLocal)),
		MediaDir:       getEnvOrDefault("MEDIA_DIR", "./Media"),
		MediaURLPrefix: getEnvOrDefault("MEDIA_URL_PREFIX", "/api/Media"),
		DefaultImageURL: getEnvOrDefault(
			"DEFAULT_IMAGE_URL",
			"/api/Media/profiles/user_avatars/defaultUserProfileIcon.webp",
		),
		StorageTimeout: getEnvDurationOrDefault("STORAGE_TIMEOUT", 10*time.Second),

		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
		S3UsePathStyle: getEnvBoolOrDefault("S3_USE_PATH_STYLE", false),

		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"https://princenzmwz.netlify.app"}),
		LoginRateWindow:    getEnvDurationOrDefault("LOGIN_RATE_LIMIT_WINDOW", 15*time.Minute),
		LoginRateMax:       getEnvIntOrDefault("LOGIN_RATE_LIMIT_MAX", 10),
		PageSize:           getEnvIntOrDefault("PAGE_SIZE", 5),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports every setting the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if len(c.JWTSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}

	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	switch c.StorageBackend {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when STORAGE_BACKEND=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	if c.LoginRateMax < 1 || c.LoginRateWindow <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT_MAX and LOGIN_RATE_LIMIT_WINDOW must be positive"))
	}

	if c.PageSize < 1 {
		errs = append(errs, errors.New("PAGE_SIZE must be at least 1"))
	}

	return errors.Join(errs...)
}

// UsesMongo reports whether DatabaseURL points at a mongo deployment.
func (c Config) UsesMongo() bool {
	return strings.HasPrefix(c.DatabaseURL, "mongodb://") || strings.HasPrefix(c.DatabaseURL, "mongodb+srv://")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
