package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultURL is the wiki page carrying the skin pricing table.
const DefaultURL = "https://wiki.leagueoflegends.com/en-us/List_of_champion_skins"

// DefaultUserAgent impersonates a desktop Chrome browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultOutput is where the price book is written, relative to the working directory.
const DefaultOutput = "assets/skin_prices.json"

// Config holds all application configuration.
type Config struct {
	Source    SourceConfig
	Output    OutputConfig
	Browser   BrowserConfig
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// SourceConfig controls how the pricing page is fetched and parsed.
type SourceConfig struct {
	// URL is the page to fetch.
	URL string // default: DefaultURL

	// UserAgent is sent as the only request header.
	UserAgent string // default: DefaultUserAgent

	// Engine selects the fetch engine: "http" or "rod".
	Engine string // default: "http"

	// Extractor selects the table extractor: "regex" or "tree".
	Extractor string // default: "regex"

	// Timeout bounds the fetch. Zero means no timeout.
	Timeout time.Duration // default: 0

	// MaxBodyBytes caps the response body. Larger bodies fail the run.
	MaxBodyBytes int64 // default: 64 MiB

	// DriftThreshold is the layout fingerprint distance reported as drift.
	DriftThreshold int // default: 10
}

// OutputConfig controls the written artifact.
type OutputConfig struct {
	Path string // default: DefaultOutput
}

// BrowserConfig controls the Rod browser used by the "rod" engine.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth injects go-rod/stealth before navigation.
	Stealth bool // default: true
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the loaded price book cache.
type CacheConfig struct {
	// TTL is how long a loaded book is served before the file is re-checked.
	TTL time.Duration // default: 1m
}

// WebhookConfig controls the notification sent after a successful save.
type WebhookConfig struct {
	// URL receives the event. Empty disables delivery.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Source: SourceConfig{
			URL:            envOr("SKINPRICES_URL", DefaultURL),
			UserAgent:      envOr("SKINPRICES_USER_AGENT", DefaultUserAgent),
			Engine:         envOr("SKINPRICES_ENGINE", "http"),
			Extractor:      envOr("SKINPRICES_EXTRACTOR", "regex"),
			Timeout:        envDurationOr("SKINPRICES_TIMEOUT", 0),
			MaxBodyBytes:   envInt64Or("SKINPRICES_MAX_BODY_BYTES", 64<<20),
			DriftThreshold: envIntOr("SKINPRICES_DRIFT_THRESHOLD", 10),
		},
		Output: OutputConfig{
			Path: envOr("SKINPRICES_OUTPUT", DefaultOutput),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("SKINPRICES_HEADLESS", true),
			NoSandbox:  envBoolOr("SKINPRICES_NO_SANDBOX", false),
			BrowserBin: os.Getenv("SKINPRICES_BROWSER_BIN"),
			Stealth:    envBoolOr("SKINPRICES_STEALTH", true),
		},
		Server: ServerConfig{
			Host: envOr("SKINPRICES_HOST", "0.0.0.0"),
			Port: envIntOr("SKINPRICES_PORT", 8080),
			Mode: envOr("SKINPRICES_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SKINPRICES_AUTH_ENABLED", false),
			APIKeys: envSliceOr("SKINPRICES_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SKINPRICES_RATE_RPS", 5.0),
			Burst:             envIntOr("SKINPRICES_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			TTL: envDurationOr("SKINPRICES_CACHE_TTL", time.Minute),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("SKINPRICES_WEBHOOK_URL"),
			Secret: os.Getenv("SKINPRICES_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("SKINPRICES_LOG_LEVEL", "info"),
			Format: envOr("SKINPRICES_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
