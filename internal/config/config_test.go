package config

import (
	"strings"
	"testing"
	"time"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("GOUTLY_DEV", "")

	t.Setenv("SECRET_KEY", "")
	if _, _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is empty")
	}

	t.Setenv("SECRET_KEY", "change_me_in_production")
	if _, _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses insecure placeholder")
	}

	t.Setenv("SECRET_KEY", "replace_with_at_least_32_random_characters")
	if _, _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses example placeholder")
	}

	t.Setenv("SECRET_KEY", "too-short-secret")
	if _, _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is too short")
	}

	t.Setenv("SECRET_KEY", validSecret)
	secret, ephemeral, err := resolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != validSecret || ephemeral {
		t.Fatalf("resolveSecretKey() = %q, %v, want configured secret", secret, ephemeral)
	}
}

func TestResolveSecretKeyGeneratesDevelopmentSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("GOUTLY_DEV", "1")

	secret, ephemeral, err := resolveSecretKey()
	if err != nil {
		t.Fatalf("resolveSecretKey() unexpected error: %v", err)
	}
	if !ephemeral || len(secret) < minSecretKeyLength {
		t.Fatalf("resolveSecretKey() = %q, %v, want ephemeral secret", secret, ephemeral)
	}
}

func TestResolvePort(t *testing.T) {
	t.Setenv("PORT", "")
	port, err := resolvePort()
	if err != nil || port != "8080" {
		t.Fatalf("resolvePort() = %q, %v, want default 8080", port, err)
	}

	t.Setenv("PORT", "9090")
	port, err = resolvePort()
	if err != nil || port != "9090" {
		t.Fatalf("resolvePort() = %q, %v, want 9090", port, err)
	}

	for _, invalid := range []string{"0", "70000", "not-a-number"} {
		t.Setenv("PORT", invalid)
		if _, err := resolvePort(); err == nil {
			t.Fatalf("expected invalid port %q to fail", invalid)
		}
	}
}

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "DEFAULT_LANGUAGE", "LOG_LEVEL", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TIMEOUT", "DEFAULT_PURINE_GOAL", "HISTORY_CAP", "REKOGNITION_ENABLED", "AWS_REGION", "COOKIE_SECURE", "GOUTLY_DEV"} {
		t.Setenv(key, "")
	}
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("TZ", "Asia/Seoul")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DefaultLanguage != "ko" || cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.GeminiTimeout != 60*time.Second || cfg.DefaultPurineGoal != 200 || cfg.HistoryCap != 50 {
		t.Fatalf("unexpected numeric defaults %#v", cfg)
	}
	if cfg.Location.String() != "Asia/Seoul" {
		t.Fatalf("expected Asia/Seoul location, got %s", cfg.Location)
	}
	if !strings.HasSuffix(cfg.DBPath, "goutly.db") {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("PORT", "")

	tests := []struct {
		key   string
		value string
	}{
		{key: "GEMINI_TIMEOUT", value: "soon"},
		{key: "DEFAULT_PURINE_GOAL", value: "-5"},
		{key: "HISTORY_CAP", value: "many"},
		{key: "COOKIE_SECURE", value: "maybe"},
	}
	for _, testCase := range tests {
		t.Run(testCase.key, func(t *testing.T) {
			t.Setenv(testCase.key, testCase.value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected %s=%q to fail", testCase.key, testCase.value)
			}
		})
	}
}

func TestFromEnvRequiresRegionForRekognition(t *testing.T) {
	t.Setenv("SECRET_KEY", validSecret)
	t.Setenv("PORT", "")
	t.Setenv("REKOGNITION_ENABLED", "true")
	t.Setenv("AWS_REGION", "")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected missing AWS_REGION to fail")
	}

	t.Setenv("AWS_REGION", "ap-northeast-2")
	cfg, err := FromEnv()
	if err != nil || !cfg.RekognitionEnabled {
		t.Fatalf("FromEnv() = %#v, %v, want rekognition enabled", cfg, err)
	}
}
