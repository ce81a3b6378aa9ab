package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// PlaceholderAPIKey is the sample Firecrawl key shipped in docs. It is
// treated the same as an unset key.
const PlaceholderAPIKey = "fc-YOUR_FIRECRAWL_API_KEY"

// DefaultSearchBaseURL is the phonelcdparts.com catalog search endpoint;
// the escaped query is appended to it as the value of q.
const DefaultSearchBaseURL = "https://www.phonelcdparts.com/catalogsearch/result/?q="

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Log       LogConfig
	Search    SearchConfig
	Fetch     FetchConfig
	Firecrawl FirecrawlConfig
	Browser   BrowserConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"

	// MCPPath is where the streamable-HTTP MCP endpoint is mounted.
	MCPPath string // default: "/mcp"
}

// AuthConfig controls API key authentication on the HTTP surface.
type AuthConfig struct {
	// APIKeys is the list of accepted keys. Empty disables auth.
	APIKeys []string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// SearchConfig controls URL construction.
type SearchConfig struct {
	BaseURL string
}

// FetchConfig selects and bounds the page fetch engine.
type FetchConfig struct {
	// Engine is one of "firecrawl", "http", "browser".
	Engine string // default: "firecrawl"

	// Timeout is the deadline for a single page fetch.
	Timeout time.Duration // default: 60s

	// Proxy is used by the http and browser engines.
	Proxy string
}

// FirecrawlConfig holds the hosted scraping API settings.
type FirecrawlConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.firecrawl.dev"
}

// KeyConfigured reports whether a usable API key is set.
func (c FirecrawlConfig) KeyConfigured() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

// BrowserConfig controls the headless Chromium engine.
type BrowserConfig struct {
	Headless   bool // default: true
	NoSandbox  bool // default: false
	BrowserBin string

	// BlockedResourceTypes lists resource types to block.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    envOr("LCDPARTS_HOST", "0.0.0.0"),
			Port:    envIntOr("LCDPARTS_PORT", 8080),
			Mode:    envOr("LCDPARTS_MODE", "release"),
			MCPPath: envOr("LCDPARTS_MCP_PATH", "/mcp"),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("LCDPARTS_API_KEYS", nil),
		},
		Log: LogConfig{
			Level:  envOr("LCDPARTS_LOG_LEVEL", "info"),
			Format: envOr("LCDPARTS_LOG_FORMAT", "json"),
		},
		Search: SearchConfig{
			BaseURL: envOr("LCDPARTS_SEARCH_BASE_URL", DefaultSearchBaseURL),
		},
		Fetch: FetchConfig{
			Engine:  strings.ToLower(envOr("LCDPARTS_FETCH_ENGINE", "firecrawl")),
			Timeout: envDurationOr("LCDPARTS_FETCH_TIMEOUT", 60*time.Second),
			Proxy:   os.Getenv("LCDPARTS_PROXY"),
		},
		Firecrawl: FirecrawlConfig{
			APIKey:  os.Getenv("FIRECRAWL_API_KEY"),
			BaseURL: envOr("FIRECRAWL_API_URL", "https://api.firecrawl.dev"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("LCDPARTS_HEADLESS", true),
			NoSandbox:  envBoolOr("LCDPARTS_NO_SANDBOX", false),
			BrowserBin: os.Getenv("LCDPARTS_BROWSER_BIN"),
			BlockedResourceTypes: envSliceOr("LCDPARTS_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
	}
}

// NewLogger builds a slog.Logger writing to w according to cfg.
// The stdio MCP server passes os.Stderr so stdout stays protocol-only.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
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

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
