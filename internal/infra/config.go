package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Output modes supported by the result sink.
const (
	OutputModeInline  = "inline"
	OutputModePersist = "persist"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv        string
	Port          string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// OutputMode selects how generated mockups are returned: "inline"
	// embeds them as base64 data URIs, "persist" writes them under
	// UploadsPath and returns a download URL.
	OutputMode    string
	UploadsPath   string
	PublicBaseURL string

	RetentionMaxAge time.Duration
	SweepInterval   time.Duration
	GenerateTimeout time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	CORSAllowedOrigins []string
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The Gemini credential is validated here so a
// misconfigured deployment fails at startup instead of on the first request.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "3000"),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash-image-preview"),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OutputMode:       getEnv("OUTPUT_MODE", OutputModeInline),
		UploadsPath:      getEnv("UPLOADS_PATH", "./uploads"),
		RetentionMaxAge:  time.Hour * time.Duration(getEnvInt("RETENTION_MAX_AGE_HOURS", 24)),
		SweepInterval:    time.Minute * time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 60)),
		GenerateTimeout:  time.Second * time.Duration(getEnvInt("GENERATE_TIMEOUT_SECONDS", 60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.OutputMode != OutputModeInline && cfg.OutputMode != OutputModePersist {
		return nil, fmt.Errorf("OUTPUT_MODE must be %q or %q, got %q", OutputModeInline, OutputModePersist, cfg.OutputMode)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
