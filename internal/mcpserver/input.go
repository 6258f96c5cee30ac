package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/erraggy/oaslimbs/internal/options"
	"github.com/erraggy/oaslimbs/parser"
)

// specInput represents the three ways a Swagger 2.0 document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Swagger 2.0 file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a Swagger 2.0 document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline Swagger 2.0 document content (JSON or YAML)"`
}

// cacheEntry holds a cached parse result and its expiry.
type cacheEntry struct {
	result    *parser.ParseResult
	expiresAt time.Time
}

// specCacheStore is a session-scoped LRU cache of parsed documents.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash and URL inputs by the URL string. Cached documents are shared
// between tool calls and must not be mutated.
type specCacheStore struct {
	entries        *lru.Cache
	sweeperStarted atomic.Bool
}

var specCache = newSpecCacheStore(cfg.CacheMaxSize)

func newSpecCacheStore(size int) *specCacheStore {
	entries, err := lru.New(size)
	if err != nil {
		// loadConfig only accepts positive sizes
		panic(err)
	}
	return &specCacheStore{entries: entries}
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *parser.ParseResult {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil
	}
	e := v.(*cacheEntry)
	if time.Now().After(e.expiresAt) {
		c.entries.Remove(key)
		return nil
	}
	return e.result
}

// put stores a result with a specific TTL, evicting the least recently used
// entry if at capacity.
func (c *specCacheStore) put(key string, result *parser.ParseResult, ttl time.Duration) {
	c.entries.Add(key, &cacheEntry{result: result, expiresAt: time.Now().Add(ttl)})
}

// sweep removes all expired entries from the cache without touching the
// recency of live ones.
func (c *specCacheStore) sweep() {
	now := time.Now()
	for _, k := range c.entries.Keys() {
		if v, ok := c.entries.Peek(k); ok && now.After(v.(*cacheEntry).expiresAt) {
			c.entries.Remove(k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.entries.Purge()
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	return c.entries.Len()
}

// validate checks that exactly one source is set and that inline content
// fits the configured limit.
func (s specInput) validate() error {
	if err := options.ValidateSingleInputSource("spec",
		"exactly one of file, url, or content must be provided (got none)",
		"exactly one of file, url, or content must be provided (got several)",
		s.File != "", s.URL != "", s.Content != "",
	); err != nil {
		return err
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASLIMBS_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// cacheKey returns the cache key and TTL for s, or "" when s cannot be cached.
func (s specInput) cacheKey() (string, time.Duration) {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case s.URL != "":
		return "url:" + s.URL, cfg.CacheURLTTL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:]), cfg.CacheContentTTL
	default:
		return "", 0
	}
}

// parseOptions returns the parser options that load s.
func (s specInput) parseOptions() []parser.Option {
	switch {
	case s.File != "":
		return []parser.Option{parser.WithFilePath(s.File)}
	case s.URL != "":
		opts := []parser.Option{parser.WithFilePath(s.URL)}
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(newSafeHTTPClient()))
		}
		return opts
	default:
		return []parser.Option{parser.WithReader(strings.NewReader(s.Content))}
	}
}

// resolve parses the document from whichever input was provided, using the
// cache when enabled.
func (s specInput) resolve() (*parser.ParseResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	result, err := parser.ParseWithOptions(s.parseOptions()...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.put(key, result, ttl)
	}
	return result, nil
}

