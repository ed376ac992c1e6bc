package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/index/internal/chat"
	"github.com/MrSnakeDoc/index/internal/config"
	"github.com/MrSnakeDoc/index/internal/generator"
	"github.com/MrSnakeDoc/index/internal/httpserver"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/redis"
	"github.com/MrSnakeDoc/index/internal/scheduler"
	"github.com/MrSnakeDoc/index/internal/search"
	"github.com/MrSnakeDoc/index/internal/settings"
	"github.com/MrSnakeDoc/index/internal/sources/metadata"
	"github.com/MrSnakeDoc/index/internal/store"
	"github.com/MrSnakeDoc/index/internal/store/bolt"
	"github.com/MrSnakeDoc/index/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/index/internal/store/redis"
	"github.com/MrSnakeDoc/index/internal/utils"
	"github.com/MrSnakeDoc/index/internal/version"
)

type App struct {
	cfg              *config.Config
	logger           logger.Logger
	server           *httpserver.Server
	backend          *Backend
	bookmarkReloader *scheduler.BookmarkReloader
	gc               *scheduler.GarbageCollector
}

// Backend is an opened key-value store. Redis is set only for the redis
// backend, which also serves as the suggestion cache.
type Backend struct {
	KV    store.KV
	Redis *redisstore.Store

	client *goredis.Client
}

// Close releases the store and, for redis, the client.
func (b *Backend) Close(log logger.Logger) {
	utils.CloseLogged(b.KV, log, "store")
	if b.client != nil {
		utils.CloseLogged(b.client, log, "redis")
	}
}

// OpenStore opens the backend selected by cfg.StoreBackend. The redis
// backend retries until cfg.RedisConnectTimeout expires.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn("using in-memory store, settings are lost on restart")
		return &Backend{KV: memory.NewStore()}, nil

	case config.StoreRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		rs := redisstore.NewStore(client)
		return &Backend{KV: rs, Redis: rs, client: client}, nil

	default:
		db, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", cfg.BoltPath, err)
		}
		log.Info("bolt store opened", logger.String("path", db.Path()))
		return &Backend{KV: db}, nil
	}
}

func New(cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the store early - fail fast if unavailable
	backend, err := OpenStore(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	svc := settings.NewService(backend.KV, loggerClient, settings.Options{
		MaxRecentSearches: cfg.MaxRecentSearches,
		GraphHistoryLimit: cfg.GraphHistoryLimit,
	})

	suggestOpts := search.ClientOptions{
		Timeout:  cfg.SuggestTimeout,
		CacheTTL: cfg.SuggestCacheTTL,
		Logger:   loggerClient,
	}
	if backend.Redis != nil {
		suggestOpts.Cache = backend.Redis
	}

	history := chat.NewHistory(svc)
	assistant := chat.NewAssistant(history, chat.AssistantOptions{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	}, loggerClient)
	if assistant.Enabled() {
		loggerClient.Info("chat assistant enabled", logger.String("model", assistant.Model()))
	} else {
		loggerClient.Info("INDEX_OPENAI_API_KEY not set, chat assistant disabled")
	}

	gc := scheduler.NewGarbageCollector(
		history,
		svc,
		loggerClient,
		cfg.GCInterval,
		cfg.ChatRetention,
	)

	// Initialize bookmark reloader (if bookmark file is configured)
	var bookmarkReloader *scheduler.BookmarkReloader
	var bookmarkReloadTrigger chan struct{}
	if cfg.BookmarkFile != "" {
		loggerClient.Info("bookmark file configured, initializing bookmark reloader",
			logger.String("file", cfg.BookmarkFile))
		bookmarkReloadTrigger = make(chan struct{}, 1)
		bookmarkReloader = scheduler.NewBookmarkReloader(
			cfg.BookmarkFile,
			svc,
			loggerClient,
			cfg.ReloadInterval,
			bookmarkReloadTrigger,
		)
	} else {
		loggerClient.Info("bookmark file not configured, seeding disabled")
	}

	d := deps.Deps{
		Logger:                loggerClient,
		StartTime:             time.Now(),
		Version:               version.Version,
		Commit:                version.Commit,
		BuildDate:             version.BuildDate,
		GoVersion:             version.GoVersion,
		TimeNow:               time.Now,
		AllowedHosts:          cfg.AllowedHosts,
		AllowedCIDRS:          cfg.AllowedCIDRS,
		TrustProxy:            cfg.TrustProxy,
		CORSOrigins:           cfg.CORSOrigins,
		RateLimitBurst:        cfg.RateLimitBurst,
		RateLimitRefill:       cfg.RateLimitRefill,
		Store:                 backend.KV,
		StoreBackend:          cfg.StoreBackend,
		Settings:              svc,
		SuggestCache:          backend.Redis,
		HomepageURL:           cfg.HomepageURL,
		Suggester:             search.NewClient(suggestOpts),
		Metadata:              metadata.NewFetcher(nil, cfg.MetadataTimeout),
		History:               history,
		Assistant:             assistant,
		NewRand:               generator.NewRand,
		UploadMaxBytes:        cfg.UploadMaxBytes,
		SemesterStart:         cfg.SemesterStart,
		SemesterEnd:           cfg.SemesterEnd,
		BookmarkFile:          cfg.BookmarkFile,
		BookmarkReloadTrigger: bookmarkReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:              cfg,
		logger:           loggerClient,
		server:           server,
		backend:          backend,
		bookmarkReloader: bookmarkReloader,
		gc:               gc,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Index v%s on %s (store=%s)", version.Version, a.cfg.ListenPort, a.cfg.StoreBackend)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start bookmark reloader (if enabled)
	if a.bookmarkReloader != nil {
		if err := a.bookmarkReloader.Start(ctx); err != nil {
			a.close()
			return fmt.Errorf("failed to start bookmark reloader: %w", err)
		}
		a.logger.Info("bookmark reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		a.stopBookmarkReloader()
		a.close()
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("retention", a.cfg.ChatRetention))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.stopBookmarkReloader()
		a.gc.Stop()
		a.close()
		return err
	}

	a.stopBookmarkReloader()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.close()
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.close()
	a.logger.Info("✅ Index stopped cleanly")
	return nil
}

func (a *App) stopBookmarkReloader() {
	if a.bookmarkReloader != nil {
		a.bookmarkReloader.Stop()
	}
}

func (a *App) close() {
	a.backend.Close(a.logger)
	_ = a.logger.Sync()
}
