package mcpserver

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oaslimbs/bundler"
	"github.com/erraggy/oaslimbs/subset"
	"github.com/erraggy/oaslimbs/writer"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Extraction defaults.
	DefaultFormat writer.Format
	DefaultAnchor string
	MaxLimbs      int
	Concurrency   int

	// Listing defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASLIMBS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       env("OASLIMBS_CACHE_ENABLED", true, strconv.ParseBool),
		CacheMaxSize:       env("OASLIMBS_CACHE_MAX_SIZE", 10, positiveInt),
		CacheFileTTL:       env("OASLIMBS_CACHE_FILE_TTL", 15*time.Minute, positiveDuration),
		CacheURLTTL:        env("OASLIMBS_CACHE_URL_TTL", 5*time.Minute, positiveDuration),
		CacheContentTTL:    env("OASLIMBS_CACHE_CONTENT_TTL", 15*time.Minute, positiveDuration),
		CacheSweepInterval: env("OASLIMBS_CACHE_SWEEP_INTERVAL", 60*time.Second, positiveDuration),
		DefaultFormat:      env("OASLIMBS_DEFAULT_FORMAT", writer.FormatYAML, writer.ParseFormat),
		DefaultAnchor:      env("OASLIMBS_DEFAULT_ANCHOR", subset.DefaultAnchor, validAnchor),
		MaxLimbs:           env("OASLIMBS_MAX_LIMBS", 100, positiveInt),
		Concurrency:        env("OASLIMBS_CONCURRENCY", 4, positiveInt),
		ListLimit:          env("OASLIMBS_LIST_LIMIT", 100, positiveInt),
		MaxLimit:           env("OASLIMBS_MAX_LIMIT", 1000, positiveInt),
		MaxInlineSize:      int64(env("OASLIMBS_MAX_INLINE_SIZE", 10*1024*1024, positiveInt)),
		AllowPrivateIPs:    env("OASLIMBS_ALLOW_PRIVATE_IPS", false, strconv.ParseBool),
	}
}

// env returns the parsed value of the environment variable key, or
// fallback when it is unset or does not parse.
func env[T any](key string, fallback T, parse func(string) (T, error)) T {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := parse(v)
	if err != nil {
		slog.Warn("invalid env var, using default", "key", key, "value", v, "default", fallback, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return parsed
}

var errNotPositive = errors.New("must be positive")

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err == nil && n <= 0 {
		err = errNotPositive
	}
	return n, err
}

func positiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err == nil && d <= 0 {
		err = errNotPositive
	}
	return d, err
}

func validAnchor(s string) (string, error) {
	return s, bundler.ValidateAnchor(s)
}
