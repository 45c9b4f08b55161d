package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/favicon"
	"github.com/kerval/navdock/internal/logger"
	redisstore "github.com/kerval/navdock/internal/store/redis"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs/CIDRs allowed to access the admin surface
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	RedisClient *redis.Client     // Redis client connection
	Store       *redisstore.Store // persistence adapter over Redis

	DefaultDocument func() *domain.Document // bundled seed tree, fresh copy per call
	Favicons        *favicon.Fetcher        // per-host favicon fetch-and-cache

	AdminSecret     string        // shared admin secret
	TokenTTL        time.Duration // admin session token lifetime
	AdminRateBurst  int           // rate limit burst for the admin surface
	AdminRatePerMin int           // rate limit refill per IP per minute
}
