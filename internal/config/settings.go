package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Settings struct {
	Port           string
	Environment    string
	DatabaseDSN    string
	RedisURL       string
	AllowedOrigins []string
	CookieDomain   string

	MCQProvider    string
	MCQModel       string
	MaxUploadBytes int64
	SessionTTL     time.Duration
	GenerationLock time.Duration
}

func Load() *Settings {
	return &Settings{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("APP_ENV", "development"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		RedisURL:       os.Getenv("REDIS_URL"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		MCQProvider:    getEnv("MCQ_PROVIDER", "gemini"),
		MCQModel:       getEnv("MCQ_MODEL", "gemini-2.0-flash"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 2<<20),
		SessionTTL:     getEnvDuration("QUIZ_SESSION_TTL", 24*time.Hour),
		GenerationLock: getEnvDuration("QUIZ_GENERATION_LOCK_TTL", 2*time.Minute),
	}
}

// credentialEnv maps each supported provider to the variable holding its API credential.
var credentialEnv = map[string]string{
	"github":  "GITHUB_TOKEN",
	"mistral": "MISTRAL_API_KEY",
	"gemini":  "GEMINI_API_KEY",
}

// EnvCredentials resolves provider credentials from the process environment on every call.
type EnvCredentials struct{}

func (EnvCredentials) Credential(provider string) string {
	name, ok := credentialEnv[provider]
	if !ok {
		return ""
	}
	return strings.TrimSpace(os.Getenv(name))
}

func CredentialEnvName(provider string) string {
	return credentialEnv[provider]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
