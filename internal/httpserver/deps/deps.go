package deps

import (
	"math/rand/v2"
	"time"

	"github.com/MrSnakeDoc/index/internal/chat"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/search"
	"github.com/MrSnakeDoc/index/internal/settings"
	"github.com/MrSnakeDoc/index/internal/sources/metadata"
	"github.com/MrSnakeDoc/index/internal/store"
	redisstore "github.com/MrSnakeDoc/index/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	// ─────────────────────────────
	// Access restrictions
	// ─────────────────────────────

	AllowedHosts []string // Host headers allowed to reach the ops endpoints
	AllowedCIDRS []string // client IPs allowed to reach the ops endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins  []string

	RateLimitBurst  int // suggestion requests allowed in a burst per client
	RateLimitRefill int // tokens refilled per client per minute

	// ─────────────────────────────
	// Storage
	// ─────────────────────────────

	Store        store.KV
	StoreBackend string // "bolt", "redis" or "memory"
	Settings     *settings.Service
	SuggestCache *redisstore.Store // nil unless the store backend is redis

	// ─────────────────────────────
	// Widgets
	// ─────────────────────────────

	HomepageURL string // redirect target for empty searches
	Suggester   *search.Client
	Metadata    *metadata.Fetcher // nil disables title/description lookup
	History     *chat.History
	Assistant   *chat.Assistant
	NewRand     func() *rand.Rand // random source for the generators

	UploadMaxBytes int64
	SemesterStart  string // optional default first day of classes, YYYY-MM-DD
	SemesterEnd    string // optional default last day of classes, YYYY-MM-DD

	// ─────────────────────────────
	// Bookmark seed file
	// ─────────────────────────────

	BookmarkFile          string        // empty when no seed file is configured
	BookmarkReloadTrigger chan struct{} // nil when no seed file is configured
}

// Now returns TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
