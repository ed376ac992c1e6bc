package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/index/internal/calendar"
)

// Store backends
const (
	StoreBolt   = "bolt"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, covers the chat round trip

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	HomepageURL string // redirect target for empty searches

	// Storage
	StoreBackend string // bolt | redis | memory
	BoltPath     string // bbolt file, bolt backend only

	// Bookmarks and history
	BookmarkFile      string        // optional YAML seed file (empty = no seeding)
	ReloadInterval    time.Duration // interval to re-read the seed file (default: 24h)
	GCInterval        time.Duration // interval to run garbage collection (default: 24h)
	ChatRetention     time.Duration // chat messages older than this are pruned
	GraphHistoryLimit int           // graph history entries kept
	MaxRecentSearches int           // recent searches kept

	// Widgets
	SuggestTimeout  time.Duration
	SuggestCacheTTL time.Duration // redis backend only
	MetadataTimeout time.Duration
	UploadMaxBytes  int64
	SemesterStart   string // YYYY-MM-DD, optional
	SemesterEnd     string // YYYY-MM-DD, optional

	// Chat assistant (disabled without a key)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string

	RateLimitBurst  int // suggestion requests per client in a burst
	RateLimitRefill int // suggestion tokens refilled per client per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("INDEX_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("INDEX_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("INDEX_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  getenv("INDEX_LOG_LEVEL", "info"),
		PrettyLog: mustBool("INDEX_PRETTY_LOG", true),

		HomepageURL: getenv("INDEX_HOMEPAGE_URL", "/"),

		// Storage
		StoreBackend: strings.ToLower(getenv("INDEX_STORE", StoreBolt)),
		BoltPath:     getenv("INDEX_BOLT_PATH", "/data/index.db"),

		// Bookmarks and history
		BookmarkFile:      getenv("INDEX_BOOKMARK_FILE", ""),
		ReloadInterval:    mustDuration("INDEX_RELOAD_SOURCE_INTERVAL", 24*time.Hour),
		GCInterval:        mustDuration("INDEX_GC_INTERVAL", 24*time.Hour),
		ChatRetention:     mustDuration("INDEX_CHAT_RETENTION", 30*24*time.Hour),
		GraphHistoryLimit: getenvInt("INDEX_GRAPH_HISTORY_LIMIT", 50),
		MaxRecentSearches: getenvInt("INDEX_MAX_RECENT_SEARCHES", 10),

		// Widgets
		SuggestTimeout:  mustDuration("INDEX_SUGGEST_TIMEOUT", 2*time.Second),
		SuggestCacheTTL: mustDuration("INDEX_SUGGEST_CACHE_TTL", 10*time.Minute),
		MetadataTimeout: mustDuration("INDEX_METADATA_TIMEOUT", 3*time.Second),
		UploadMaxBytes:  getenvInt64("INDEX_UPLOAD_MAX_BYTES", 10<<20),
		SemesterStart:   getenv("INDEX_SEMESTER_START", ""),
		SemesterEnd:     getenv("INDEX_SEMESTER_END", ""),

		// Chat assistant
		OpenAIAPIKey:  getenv("INDEX_OPENAI_API_KEY", ""),
		OpenAIBaseURL: getenv("INDEX_OPENAI_BASE_URL", ""),
		OpenAIModel:   getenv("INDEX_OPENAI_MODEL", "gpt-4o-mini"),

		// Redis settings (only read by the redis backend)
		RedisAddr:             getenv("INDEX_REDIS_ADDR", ""),
		RedisUser:             getenv("INDEX_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("INDEX_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("INDEX_REDIS_PASSWORD", ""),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("INDEX_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("INDEX_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("INDEX_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("INDEX_CORS_ORIGINS", "*")),

		RateLimitBurst:  getenvInt("INDEX_RATE_LIMIT_BURST", 20),
		RateLimitRefill: getenvInt("INDEX_RATE_LIMIT_REFILL", 60),
	}

	switch cfg.StoreBackend {
	case StoreBolt, StoreMemory:
	case StoreRedis:
		// Redis settings are only mandatory when redis holds the settings
		cfg.RedisAddr = requireEnv("INDEX_REDIS_ADDR")
		cfg.RedisDB = requireEnvInt("INDEX_REDIS_DB")
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: INDEX_REDIS_PASSWORD is required when INDEX_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: INDEX_STORE must be one of bolt, redis, memory (got %q)", cfg.StoreBackend))
	}

	if (cfg.SemesterStart == "") != (cfg.SemesterEnd == "") {
		panic("❌ FATAL: INDEX_SEMESTER_START and INDEX_SEMESTER_END must be set together")
	}
	if cfg.SemesterStart != "" {
		if _, err := calendar.ParseSemester(cfg.SemesterStart, cfg.SemesterEnd); err != nil {
			panic(fmt.Sprintf("❌ FATAL: invalid semester: %v", err))
		}
	}
	if cfg.UploadMaxBytes <= 0 {
		panic("❌ FATAL: INDEX_UPLOAD_MAX_BYTES must be positive")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	if cp.OpenAIAPIKey != "" {
		cp.OpenAIAPIKey = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
