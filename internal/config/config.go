package config

import (
	"os"
	"strconv"
	"strings"
	"time"
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

	JWTSecret string
	JWTExpiry time.Duration

	// OTPTTL is how long an issued login code stays valid.
	OTPTTL time.Duration

	// FixedCodeAccounts maps lowercased emails to a login code that is always
	// issued and accepted for that account, bypassing random generation.
	// Meant for demo/test accounts; empty by default. Enabling one of these
	// in production is a product decision, never a default.
	FixedCodeAccounts map[string]string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	CookieDomain string
	CookieSecure bool

	AllowedOrigins []string // CORS allowed origins

	SeedAdminEmails []string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users      string
	Employees  string
	Attendance string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	appEnv := getEnv("APP_ENV", "development")
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  appEnv,

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:      getEnv("DYNAMO_TABLE_USERS", "users"),
			Employees:  getEnv("DYNAMO_TABLE_EMPLOYEES", "employees"),
			Attendance: getEnv("DYNAMO_TABLE_ATTENDANCE", "attendance"),
		},

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		OTPTTL: time.Duration(getEnvInt("OTP_TTL_MINUTES", 5)) * time.Minute,

		FixedCodeAccounts: parseFixedCodes(getEnv("FIXED_CODE_ACCOUNTS", "")),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnvBool("COOKIE_SECURE", appEnv != "development"),

		// Wildcard origins can't be combined with credentialed (cookie)
		// requests, so the default is the local frontend dev server.
		AllowedOrigins: splitNonEmpty(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		SeedAdminEmails: splitNonEmpty(getEnv("SEED_ADMIN_EMAILS", "")),
	}
}

// parseFixedCodes parses "email=code,email=code" pairs. Emails are lowercased;
// malformed pairs are skipped.
func parseFixedCodes(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		email, code, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || email == "" || code == "" {
			continue
		}
		out[strings.ToLower(email)] = code
	}
	return out
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
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

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
