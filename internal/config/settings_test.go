package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MCQ_PROVIDER", "")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("QUIZ_SESSION_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	s := Load()
	if s.MCQProvider != "gemini" {
		t.Errorf("MCQProvider = %q, want gemini", s.MCQProvider)
	}
	if s.MaxUploadBytes != 2<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", s.MaxUploadBytes, 2<<20)
	}
	if s.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", s.SessionTTL)
	}
	if len(s.AllowedOrigins) != 2 || s.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", s.AllowedOrigins)
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "  secret  ")
	t.Setenv("GITHUB_TOKEN", "")

	var creds EnvCredentials
	if got := creds.Credential("mistral"); got != "secret" {
		t.Errorf("mistral credential = %q, want secret", got)
	}
	if got := creds.Credential("github"); got != "" {
		t.Errorf("github credential = %q, want empty", got)
	}
	if got := creds.Credential("unknown"); got != "" {
		t.Errorf("unknown provider credential = %q, want empty", got)
	}
}
