package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kerval/navdock/internal/config"
	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/favicon"
	"github.com/kerval/navdock/internal/httpserver"
	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/logger"
	"github.com/kerval/navdock/internal/redis"
	"github.com/kerval/navdock/internal/sources/defaults"
	redisstore "github.com/kerval/navdock/internal/store/redis"
	"github.com/kerval/navdock/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
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
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient)

	// Load the bundled default tree once; hand out fresh copies so no
	// caller can mutate the seed.
	defaultsConfig, err := defaults.NewLoader(cfg.DefaultsFile).Load()
	if err != nil {
		loggerClient.Errorf("Failed to load defaults file: %v", err)
		os.Exit(1)
	}
	seed := defaults.NewMapper().MapDocument(defaultsConfig)
	seedStats := seed.Stats()
	loggerClient.Info("default tree loaded",
		logger.Int("categories", seedStats.Categories),
		logger.Int("sites", seedStats.Sites))

	favicons := favicon.New(store, loggerClient, cfg.IconServiceURL, cfg.FaviconTimeout, cfg.FaviconMaxAge)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RedisClient:     redisClient,
		Store:           store,
		DefaultDocument: func() *domain.Document { return seed.Clone() },
		Favicons:        favicons,
		AdminSecret:     cfg.AdminSecret,
		TokenTTL:        cfg.TokenTTL,
		AdminRateBurst:  cfg.AdminRateBurst,
		AdminRatePerMin: cfg.AdminRatePerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting navdock v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("navdock %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ navdock stopped cleanly")
	return nil
}
