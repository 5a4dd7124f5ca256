package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/security"
)

const (
	minSecretKeyLength = 32
	devSecretAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	defaultGeminiTimeout = 60 * time.Second
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret": {},
}

// Config holds all runtime settings, read from the environment.
type Config struct {
	SecretKey          string
	Port               string
	DBPath             string
	Location           *time.Location
	DefaultLanguage    string
	LogLevel           string
	CookieSecure       bool
	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string
	GeminiTimeout      time.Duration
	DefaultPurineGoal  int
	HistoryCap         int
	RekognitionEnabled bool
	AWSRegion          string
	EphemeralSecret    bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:          getEnvOrDefault("DB_PATH", filepath.Join("data", "goutly.db")),
		DefaultLanguage: strings.ToLower(getEnvOrDefault("DEFAULT_LANGUAGE", models.DefaultLanguage)),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:   strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		AWSRegion:       strings.TrimSpace(os.Getenv("AWS_REGION")),
		Location:        loadLocation(getEnvOrDefault("TZ", "UTC")),
	}

	var err error
	if cfg.SecretKey, cfg.EphemeralSecret, err = resolveSecretKey(); err != nil {
		return nil, err
	}
	if cfg.Port, err = resolvePort(); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = parseBoolEnv("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.RekognitionEnabled, err = parseBoolEnv("REKOGNITION_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.GeminiTimeout, err = parseDurationEnv("GEMINI_TIMEOUT", defaultGeminiTimeout); err != nil {
		return nil, err
	}
	if cfg.DefaultPurineGoal, err = parsePositiveIntEnv("DEFAULT_PURINE_GOAL", models.DefaultDailyPurineGoal); err != nil {
		return nil, err
	}
	if cfg.HistoryCap, err = parsePositiveIntEnv("HISTORY_CAP", 50); err != nil {
		return nil, err
	}
	if cfg.RekognitionEnabled && cfg.AWSRegion == "" {
		return nil, errors.New("AWS_REGION is required when REKOGNITION_ENABLED is set")
	}

	return cfg, nil
}

// resolveSecretKey rejects short or placeholder keys. With GOUTLY_DEV set an
// ephemeral key is generated instead, so sessions do not survive restarts.
func resolveSecretKey() (string, bool, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		if devMode() {
			generated, err := security.RandomString(minSecretKeyLength*2, devSecretAlphabet)
			if err != nil {
				return "", false, fmt.Errorf("generate development secret: %w", err)
			}
			return generated, true, nil
		}
		return "", false, errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", false, errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", false, fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, false, nil
}

func resolvePort() (string, error) {
	raw := getEnvOrDefault("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func devMode() bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("GOUTLY_DEV")))
	return err == nil && enabled
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return value, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return value, nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
