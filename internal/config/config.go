package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingAPIKey signals that no news-source credential was supplied.
// Surfaced before any network call is attempted.
var ErrMissingAPIKey = errors.New("NEWSAPI_KEY is required")

// defaultDomains is the trusted financial-press allowlist sent to the
// news source unless NEWS_DOMAINS overrides it.
var defaultDomains = []string{
	"bloomberg.com", "reuters.com", "ft.com", "wsj.com",
	"businessinsider.com", "cnbc.com", "marketwatch.com",
	"finance.yahoo.com", "forbes.com", "seekingalpha.com",
}

// Common contains news-source parameters shared by every binary.
type Common struct {
	NewsAPIKey     string
	NewsAPIBaseURL string
	HTTPTimeout    time.Duration
	Domains        []string
	RelevantOnly   bool
}

// CLI holds configuration for the one-shot console run.
type CLI struct {
	Common
	Company     string
	HorizonDays int
	PageSize    int
	TopN        int
}

// API describes HTTP-layer configuration.
type API struct {
	Common
	BindAddr        string
	DefaultPageSize int
	MaxHorizonDays  int
	CacheCapacity   int
	CacheTTL        time.Duration
}

func loadCommon() (Common, error) {
	c := Common{
		NewsAPIKey:     getEnv("NEWSAPI_KEY", ""),
		NewsAPIBaseURL: getEnv("NEWSAPI_BASE_URL", "https://newsapi.org/v2"),
		HTTPTimeout:    getDuration("NEWS_HTTP_TIMEOUT", "10s"),
		Domains:        splitAndTrim(getEnv("NEWS_DOMAINS", strings.Join(defaultDomains, ","))),
		RelevantOnly:   getBool("NEWS_RELEVANT_ONLY", true),
	}

	if c.NewsAPIKey == "" {
		return Common{}, ErrMissingAPIKey
	}
	if c.HTTPTimeout <= 0 {
		return Common{}, fmt.Errorf("NEWS_HTTP_TIMEOUT must be positive")
	}

	return c, nil
}

// LoadCLI builds a CLI config from environment variables. Company and
// horizon usually arrive as flags; the caller overlays them afterwards.
func LoadCLI() (*CLI, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &CLI{
		Common:      common,
		Company:     getEnv("NEWS_COMPANY", ""),
		HorizonDays: getInt("NEWS_HORIZON_DAYS", 3),
		PageSize:    getInt("NEWS_PAGE_SIZE", 5),
		TopN:        getInt("NEWS_TOP_N", 5),
	}

	if c.PageSize <= 0 {
		return nil, fmt.Errorf("NEWS_PAGE_SIZE must be positive")
	}
	if c.TopN <= 0 {
		return nil, fmt.Errorf("NEWS_TOP_N must be positive")
	}

	return c, nil
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &API{
		Common:          common,
		BindAddr:        getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		DefaultPageSize: getInt("API_PAGE_SIZE", 5),
		MaxHorizonDays:  getInt("API_MAX_HORIZON_DAYS", 30),
		CacheCapacity:   getInt("CACHE_CAPACITY", 256),
		CacheTTL:        getDuration("CACHE_TTL", "10m"),
	}

	if c.DefaultPageSize <= 0 {
		return nil, fmt.Errorf("API_PAGE_SIZE must be positive")
	}
	if c.MaxHorizonDays <= 0 {
		return nil, fmt.Errorf("API_MAX_HORIZON_DAYS must be positive")
	}
	if c.CacheCapacity <= 0 {
		return nil, fmt.Errorf("CACHE_CAPACITY must be positive")
	}
	if c.CacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
