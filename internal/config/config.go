package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort  string
	LogLevel string

	StoragePath string
	CatalogPath string

	DefaultRequiredSet string
	StrictMode         bool
	BatchWorkers       int
	PDFMaxPages        int

	ReportDir     string
	ReportFormats []string

	NATSURL     string
	NATSSubject string

	ResilienceRetryMaxAttempts int
	ResilienceBreakerEnabled   bool

	APIRateLimitRPS       int
	APIRateLimitBurst     int
	APIMaxInFlight        int
	APIBackpressureWaitMS int
	APIMaxUploadMB        int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		StoragePath: mustEnv("STORAGE_PATH", "./data/storage"),
		CatalogPath: mustEnv("CATALOG_PATH", ""),

		DefaultRequiredSet: mustEnv("DEFAULT_REQUIRED_SET", "individual_basic"),
		StrictMode:         mustEnvBool("STRICT_MODE", true),
		BatchWorkers:       mustEnvInt("BATCH_WORKERS", 4),
		PDFMaxPages:        mustEnvInt("PDF_MAX_PAGES", 0),

		ReportDir:     mustEnv("REPORT_DIR", "./reports"),
		ReportFormats: mustEnvList("REPORT_FORMATS", []string{"csv", "xlsx"}),

		// empty disables batch event publishing
		NATSURL:     mustEnv("NATS_URL", ""),
		NATSSubject: mustEnv("NATS_SUBJECT", "kyc.batch.completed"),

		ResilienceRetryMaxAttempts: mustEnvInt("RESILIENCE_RETRY_MAX_ATTEMPTS", 3),
		ResilienceBreakerEnabled:   mustEnvBool("RESILIENCE_BREAKER_ENABLED", true),

		APIRateLimitRPS:       mustEnvInt("API_RATE_LIMIT_RPS", 5),
		APIRateLimitBurst:     mustEnvInt("API_RATE_LIMIT_BURST", 10),
		APIMaxInFlight:        mustEnvInt("API_MAX_IN_FLIGHT", 4),
		APIBackpressureWaitMS: mustEnvInt("API_BACKPRESSURE_WAIT_MS", 250),
		APIMaxUploadMB:        mustEnvInt("API_MAX_UPLOAD_MB", 32),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// mustEnvList splits a comma separated value, dropping blanks and lowercasing.
func mustEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
