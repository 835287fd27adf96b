package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/clipmark/clipmark/internal/config"
	"github.com/clipmark/clipmark/internal/httpserver"
	"github.com/clipmark/clipmark/internal/httpserver/deps"
	"github.com/clipmark/clipmark/internal/index"
	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/notifier"
	"github.com/clipmark/clipmark/internal/redis"
	"github.com/clipmark/clipmark/internal/scheduler"
	"github.com/clipmark/clipmark/internal/seed"
	redisstore "github.com/clipmark/clipmark/internal/store/redis"
	"github.com/clipmark/clipmark/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *redisstore.Store
	cache       *index.BookmarkCache
	refresher   *scheduler.Refresher
	keepAlive   *scheduler.KeepAlive
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	changeNotifier := notifier.New(redisClient, loggerClient)
	store := redisstore.NewStore(redisClient, changeNotifier, loggerClient, redisstore.Options{
		QuotaBytes:     cfg.QuotaBytes,
		QuotaThreshold: cfg.QuotaThreshold,
		TrimLimit:      cfg.TrimLimit,
		RetryMax:       cfg.RetryMax,
		RetryBase:      cfg.RetryBase,
		RetryMaxWait:   cfg.RetryMaxWait,
	})

	cache := index.NewBookmarkCache(store)
	refresher := scheduler.NewRefresher(changeNotifier, cache, loggerClient, cfg.RefreshInterval)
	keepAlive := scheduler.NewKeepAlive(store, loggerClient, cfg.KeepAliveInterval)

	if cfg.SeedFile != "" {
		if err := seedStore(store, cfg.SeedFile, loggerClient); err != nil {
			loggerClient.Warn("seeding failed, continuing without seed data",
				logger.String("file", cfg.SeedFile),
				logger.Error(err))
		}
	}

	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		Store:       store,
		Cache:       cache,
		Notifier:    changeNotifier,
		RedisClient: redisClient,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       store,
		cache:       cache,
		refresher:   refresher,
		keepAlive:   keepAlive,
	}, nil
}

func seedStore(store *redisstore.Store, path string, log logger.Logger) error {
	bookmarks, err := seed.Load(path)
	if err != nil {
		return err
	}
	added, skipped, err := store.Import(context.Background(), bookmarks)
	if err != nil {
		return err
	}
	log.Info("seed file imported",
		logger.String("file", path),
		logger.Int("added", added),
		logger.Int("skipped", skipped))
	return nil
}

func (a *App) Run() error {
	a.logger.Infof("starting clipmark %s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("clipmark %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("start cache refresher: %w", err)
	}
	a.logger.Info("cache refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	if err := a.keepAlive.Start(ctx); err != nil {
		return fmt.Errorf("start keep-alive: %w", err)
	}
	a.logger.Info("storage keep-alive started",
		logger.Duration("interval", a.cfg.KeepAliveInterval))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down gracefully...")

		a.refresher.Stop()
		a.keepAlive.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return a.server.Stop(shutdownCtx)
	})

	err := g.Wait()

	if closeErr := a.redisClient.Close(); closeErr != nil {
		a.logger.Warnf("failed to close redis: %v", closeErr)
	}

	if err != nil {
		return err
	}
	a.logger.Info("clipmark stopped cleanly")
	return nil
}
