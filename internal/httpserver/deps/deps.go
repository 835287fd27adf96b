package deps

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clipmark/clipmark/internal/index"
	"github.com/clipmark/clipmark/internal/logger"
	"github.com/clipmark/clipmark/internal/notifier"
	redisstore "github.com/clipmark/clipmark/internal/store/redis"
)

// Deps are the shared dependencies handed to every route registrar.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store       *redisstore.Store
	Cache       *index.BookmarkCache
	Notifier    *notifier.Notifier
	RedisClient *goredis.Client
}
