package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is resolved from built-in defaults overridden by CLIPMARK_*
// environment variables.
type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => colored dev output, false => JSON

	// Redis
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration

	// Store quota and retry policy
	QuotaBytes     int64   // storage budget for the collection
	QuotaThreshold float64 // fraction of quota that triggers trimming
	TrimLimit      int     // records surviving a quota trim
	RetryMax       int
	RetryBase      time.Duration
	RetryMaxWait   time.Duration

	// Schedulers
	RefreshInterval   time.Duration // periodic cache refresh
	KeepAliveInterval time.Duration // storage liveness ping

	// SeedFile optionally points to a YAML file of bookmarks imported on
	// startup (existing ids are skipped). Empty = no seeding.
	SeedFile string
}

func defaults() Config {
	return Config{
		ListenAddr:      ":8080",
		ShutdownTimeout: 5 * time.Second,

		LogLevel:  "info",
		PrettyLog: true,

		RedisAddr:           "localhost:6379",
		RedisDB:             0,
		RedisDialTimeout:    5 * time.Second,
		RedisReadTimeout:    3 * time.Second,
		RedisWriteTimeout:   3 * time.Second,
		RedisPoolSize:       10,
		RedisConnectTimeout: 30 * time.Second,
		RedisRetryInterval:  2 * time.Second,
		RedisMaxWait:        10 * time.Second,
		RedisPingTimeout:    5 * time.Second,

		QuotaBytes:     100 * 1024,
		QuotaThreshold: 0.9,
		TrimLimit:      500,
		RetryMax:       3,
		RetryBase:      1 * time.Second,
		RetryMaxWait:   5 * time.Second,

		RefreshInterval:   5 * time.Minute,
		KeepAliveInterval: 30 * time.Second,
	}
}

// Load resolves the configuration.
func Load() (*Config, error) {
	cfg := defaults()

	cfg.ListenAddr = getenv("CLIPMARK_LISTEN_ADDR", cfg.ListenAddr)
	cfg.ShutdownTimeout = getenvDuration("CLIPMARK_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.LogLevel = getenv("CLIPMARK_LOG_LEVEL", cfg.LogLevel)
	cfg.PrettyLog = getenvBool("CLIPMARK_PRETTY_LOG", cfg.PrettyLog)

	cfg.RedisAddr = getenv("CLIPMARK_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisUser = getenv("CLIPMARK_REDIS_USERNAME", cfg.RedisUser)
	cfg.RedisPassword = getenv("CLIPMARK_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getenvInt("CLIPMARK_REDIS_DB", cfg.RedisDB)
	cfg.RedisDialTimeout = getenvDuration("CLIPMARK_REDIS_DIAL_TIMEOUT", cfg.RedisDialTimeout)
	cfg.RedisReadTimeout = getenvDuration("CLIPMARK_REDIS_READ_TIMEOUT", cfg.RedisReadTimeout)
	cfg.RedisWriteTimeout = getenvDuration("CLIPMARK_REDIS_WRITE_TIMEOUT", cfg.RedisWriteTimeout)
	cfg.RedisPoolSize = getenvInt("CLIPMARK_REDIS_POOL_SIZE", cfg.RedisPoolSize)
	cfg.RedisConnectTimeout = getenvDuration("CLIPMARK_REDIS_CONNECT_TIMEOUT", cfg.RedisConnectTimeout)
	cfg.RedisRetryInterval = getenvDuration("CLIPMARK_REDIS_RETRY_INTERVAL", cfg.RedisRetryInterval)
	cfg.RedisMaxWait = getenvDuration("CLIPMARK_REDIS_MAX_WAIT", cfg.RedisMaxWait)
	cfg.RedisPingTimeout = getenvDuration("CLIPMARK_REDIS_PING_TIMEOUT", cfg.RedisPingTimeout)

	cfg.QuotaBytes = getenvInt64("CLIPMARK_QUOTA_BYTES", cfg.QuotaBytes)
	cfg.QuotaThreshold = getenvFloat("CLIPMARK_QUOTA_THRESHOLD", cfg.QuotaThreshold)
	cfg.TrimLimit = getenvInt("CLIPMARK_TRIM_LIMIT", cfg.TrimLimit)
	cfg.RetryMax = getenvInt("CLIPMARK_RETRY_MAX", cfg.RetryMax)
	cfg.RetryBase = getenvDuration("CLIPMARK_RETRY_BASE", cfg.RetryBase)
	cfg.RetryMaxWait = getenvDuration("CLIPMARK_RETRY_MAX_WAIT", cfg.RetryMaxWait)

	cfg.RefreshInterval = getenvDuration("CLIPMARK_REFRESH_INTERVAL", cfg.RefreshInterval)
	cfg.KeepAliveInterval = getenvDuration("CLIPMARK_KEEPALIVE_INTERVAL", cfg.KeepAliveInterval)
	cfg.SeedFile = getenv("CLIPMARK_SEED_FILE", cfg.SeedFile)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RedisAddr == "" {
		return fmt.Errorf("redis address must not be empty")
	}
	if c.QuotaBytes <= 0 {
		return fmt.Errorf("quota_bytes must be > 0, got %d", c.QuotaBytes)
	}
	if c.QuotaThreshold <= 0 || c.QuotaThreshold > 1 {
		return fmt.Errorf("quota_threshold must be in (0, 1], got %v", c.QuotaThreshold)
	}
	if c.TrimLimit <= 0 {
		return fmt.Errorf("trim_limit must be > 0, got %d", c.TrimLimit)
	}
	if c.RetryMax <= 0 {
		return fmt.Errorf("retry_max must be > 0, got %d", c.RetryMax)
	}
	return nil
}

// helpers

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
