package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAccessTokenSecret  = "a-very-secret-key-should-be-longer-and-random"
	defaultRefreshTokenSecret = "default_insecure_refresh_secret_please_change_this_!@#$"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	CORSOrigin     string

	// Session tokens
	AccessTokenSecret          string
	AccessTokenExpiryDuration  time.Duration
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration
	JWTIssuer                  string
	CookieSecure               bool
	BcryptCost                 int

	// LoginRequireBothIdentifiers makes login demand both username and email,
	// even though either one is enough to find the user.
	LoginRequireBothIdentifiers bool
	LoginRateLimit              string
	RedisURL                    string

	// Media host (S3 compatible)
	MediaEndpoint      string
	MediaAccessKey     string
	MediaSecretKey     string
	MediaBucket        string
	MediaUseSSL        bool
	MediaPublicBaseURL string
	UploadTempDir      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("ACCESS_TOKEN_SECRET", "")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "1d")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "10d")
	viper.SetDefault("JWT_ISSUER", "vidtube-backend")
	viper.SetDefault("COOKIE_SECURE", true)
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("LOGIN_REQUIRE_BOTH_IDENTIFIERS", true)
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("MEDIA_ENDPOINT", "localhost:9000")
	viper.SetDefault("MEDIA_ACCESS_KEY", "")
	viper.SetDefault("MEDIA_SECRET_KEY", "")
	viper.SetDefault("MEDIA_BUCKET", "vidtube")
	viper.SetDefault("MEDIA_USE_SSL", false)
	viper.SetDefault("MEDIA_PUBLIC_BASE_URL", "")
	viper.SetDefault("UPLOAD_TEMP_DIR", "./public/temp")

	// Defaults above can be overridden by the .env file, which in turn is overridden by real environment variables.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "" {
		cfg.AccessTokenSecret = defaultAccessTokenSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: ACCESS_TOKEN_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "" {
		cfg.RefreshTokenSecret = defaultRefreshTokenSecret
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	cfg.AccessTokenExpiryDuration = loadExpiry("ACCESS_TOKEN_EXPIRY", 24*time.Hour)
	cfg.RefreshTokenExpiryDuration = loadExpiry("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "vidtube-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.CORSOrigin = viper.GetString("CORS_ORIGIN")
	cfg.CookieSecure = viper.GetBool("COOKIE_SECURE")
	cfg.BcryptCost = viper.GetInt("BCRYPT_COST")
	cfg.LoginRequireBothIdentifiers = viper.GetBool("LOGIN_REQUIRE_BOTH_IDENTIFIERS")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.MediaEndpoint = viper.GetString("MEDIA_ENDPOINT")
	cfg.MediaAccessKey = viper.GetString("MEDIA_ACCESS_KEY")
	cfg.MediaSecretKey = viper.GetString("MEDIA_SECRET_KEY")
	cfg.MediaBucket = viper.GetString("MEDIA_BUCKET")
	cfg.MediaUseSSL = viper.GetBool("MEDIA_USE_SSL")
	cfg.MediaPublicBaseURL = strings.TrimSuffix(viper.GetString("MEDIA_PUBLIC_BASE_URL"), "/")
	cfg.UploadTempDir = viper.GetString("UPLOAD_TEMP_DIR")

	if cfg.MediaAccessKey == "" || cfg.MediaSecretKey == "" {
		log.Println("Warning: MEDIA_ACCESS_KEY or MEDIA_SECRET_KEY not set. Media uploads will fail.")
	}

	return cfg, nil
}

func loadExpiry(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := ParseExpiry(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}

// ParseExpiry parses token lifetimes. Besides Go durations ("15m", "1h30m") it
// accepts a whole number of days ("1d", "10d") and plain seconds ("3600").
func ParseExpiry(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty expiry")
	}
	var d time.Duration
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q: %w", raw, err)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else if secs, err := strconv.Atoi(raw); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		d, err = time.ParseDuration(raw)
		if err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %q", raw)
	}
	return d, nil
}
