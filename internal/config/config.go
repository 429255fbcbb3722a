// Package config provides configuration loading and validation for the API server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// HuggingFaceConfig holds settings for the HuggingFace Inference API.
type HuggingFaceConfig struct {
	BaseURL     string        // inference router base URL
	Token       string        // bearer token, optional for public models
	SkillsModel string        // generative model used for skill extraction and title suggestion
	NERModel    string        // token-classification model used for location extraction
	MinScore    float64       // minimum confidence for accepting a location span
	Timeout     time.Duration // per-request timeout
}

// AdzunaConfig holds credentials and endpoint settings for the Adzuna job API.
type AdzunaConfig struct {
	AppID   string
	AppKey  string
	Country string // country slug in the API path, e.g. "br"
	BaseURL string
	Timeout time.Duration
}

// ScoringConfig holds the base URL of the local Python scoring service.
type ScoringConfig struct {
	BaseURL string
}

// Config is the full server configuration, read once at startup and
// immutable afterwards.
type Config struct {
	DatabaseURL string
	RedisURL    string // optional; empty disables the search cache
	HuggingFace HuggingFaceConfig
	Adzuna      AdzunaConfig
	Scoring     ScoringConfig
}

// Load reads configuration from environment variables. Missing Adzuna
// credentials or DATABASE_URL are startup errors, not per-request ones.
func Load() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	appID := os.Getenv("ADZUNA_APP_ID")
	if appID == "" {
		return nil, fmt.Errorf("ADZUNA_APP_ID environment variable is required")
	}
	appKey := os.Getenv("ADZUNA_APP_KEY")
	if appKey == "" {
		return nil, fmt.Errorf("ADZUNA_APP_KEY environment variable is required")
	}

	minScore, err := envFloat("HF_MIN_SCORE", 0.9)
	if err != nil {
		return nil, err
	}
	if minScore < 0 || minScore > 1 {
		return nil, fmt.Errorf("HF_MIN_SCORE out of range: %v (must be 0-1)", minScore)
	}

	hfTimeout, err := envSeconds("HF_TIMEOUT_SECONDS", 60*time.Second)
	if err != nil {
		return nil, err
	}
	adzunaTimeout, err := envSeconds("ADZUNA_TIMEOUT_SECONDS", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL: databaseURL,
		RedisURL:    os.Getenv("REDIS_URL"),
		HuggingFace: HuggingFaceConfig{
			BaseURL:     envDefault("HF_BASE_URL", "https://router.huggingface.co/hf-inference/"),
			Token:       os.Getenv("HF_TOKEN"),
			SkillsModel: envDefault("HF_SKILLS_MODEL", "microsoft/DialoGPT-medium"),
			NERModel:    envDefault("HF_NER_MODEL", "dslim/bert-base-NER"),
			MinScore:    minScore,
			Timeout:     hfTimeout,
		},
		Adzuna: AdzunaConfig{
			AppID:   appID,
			AppKey:  appKey,
			Country: envDefault("ADZUNA_COUNTRY", "br"),
			BaseURL: envDefault("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api/jobs"),
			Timeout: adzunaTimeout,
		},
		Scoring: ScoringConfig{
			BaseURL: envDefault("SCORING_API_URL", "http://localhost:5001"),
		},
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return f, nil
}

func envSeconds(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	if secs < 1 {
		return 0, fmt.Errorf("%s must be at least 1 second, got: %d", key, secs)
	}
	return time.Duration(secs) * time.Second, nil
}
