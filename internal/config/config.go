package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/portfolio-backend/internal/domain"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string // empty disables sync snapshot archiving
	SNSRegion      string

	// OTPSecret signs the self-describing verification tokens.
	OTPSecret string
	// OTPAllowedRecipients restricts who may receive codes. Empty = unrestricted.
	OTPAllowedRecipients []string
	OTPTokenTTL          time.Duration
	OTPRateWindow        time.Duration
	OTPMaxAttempts       int

	EmailAPIKey string
	EmailAPIURL string
	EmailFrom   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	LeetCodeUsername string
	LeetCodeAPIURL   string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	RateLimits    string
	LeetCodeStats string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			RateLimits:    getEnv("DYNAMO_TABLE_RATE_LIMITS", "otp_rate_limits"),
			LeetCodeStats: getEnv("DYNAMO_TABLE_LEETCODE_STATS", "leetcode_stats"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", ""),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),

		OTPSecret:            getEnv("OTP_SECRET", ""),
		OTPAllowedRecipients: splitNonEmpty(getEnv("OTP_ALLOWED_RECIPIENTS", "")),
		OTPTokenTTL:          time.Duration(getEnvInt("OTP_TOKEN_TTL_SECONDS", 300)) * time.Second,
		OTPRateWindow:        time.Duration(getEnvInt("OTP_RATE_WINDOW_MINUTES", 60)) * time.Minute,
		OTPMaxAttempts:       getEnvInt("OTP_MAX_ATTEMPTS", 3),

		EmailAPIKey: getEnv("EMAIL_API_KEY", ""),
		EmailAPIURL: getEnv("EMAIL_API_URL", "https://api.resend.com/emails"),
		EmailFrom:   getEnv("EMAIL_FROM", "noreply@example.com"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_MINUTES", 60)) * time.Minute,

		LeetCodeUsername: getEnv("LEETCODE_USERNAME", ""),
		LeetCodeAPIURL:   getEnv("LEETCODE_API_URL", "https://leetcode.com/graphql"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate reports whether the configuration is complete enough to serve
// requests. It is a pure check: no logging, no side effects.
func (c *Config) Validate() error {
	var missing []string
	if c.OTPSecret == "" {
		missing = append(missing, "OTP_SECRET")
	}
	if c.EmailAPIKey == "" {
		missing = append(missing, "EMAIL_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s: %w",
			strings.Join(missing, ", "), domain.ErrConfiguration)
	}
	if c.OTPMaxAttempts < 1 {
		return fmt.Errorf("OTP_MAX_ATTEMPTS must be >= 1: %w", domain.ErrConfiguration)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
