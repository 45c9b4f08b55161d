package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	AdminSecret string        // shared admin secret, exchanged for a session token
	TokenTTL    time.Duration // admin session token lifetime (default: 12h)

	DefaultsFile   string        // path to the default tree yaml (optional, empty = built-in seed)
	IconServiceURL string        // primary external icon service, %s = host
	FaviconTimeout time.Duration // timeout for outbound favicon fetches (default: 5s)
	FaviconMaxAge  time.Duration // staleness threshold for cached favicons (default: 168h)

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedOrigins []string // CORS origins for the public API (empty = allow all)
	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict the admin surface to specific IPs/CIDRs
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	AdminRateBurst  int // token bucket burst for the admin surface
	AdminRatePerMin int // token bucket refill per IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NAVDOCK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NAVDOCK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("NAVDOCK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NAVDOCK_PRETTY_LOG", true),

		// Admin auth
		AdminSecret: requireEnv("NAVDOCK_ADMIN_SECRET"),
		TokenTTL:    mustDuration("NAVDOCK_TOKEN_TTL", 12*time.Hour),

		// Navigation defaults & favicons
		DefaultsFile:   getenv("NAVDOCK_DEFAULTS_FILE", ""),
		IconServiceURL: getenv("NAVDOCK_ICON_SERVICE_URL", "https://icons.duckduckgo.com/ip3/%s.ico"),
		FaviconTimeout: mustDuration("NAVDOCK_FAVICON_TIMEOUT", 5*time.Second),
		FaviconMaxAge:  mustDuration("NAVDOCK_FAVICON_MAX_AGE", 7*24*time.Hour),

		// Redis settings
		RedisAddr:           requireEnv("NAVDOCK_REDIS_ADDR"),
		RedisUser:           getenv("NAVDOCK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("NAVDOCK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("NAVDOCK_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("NAVDOCK_ALLOWED_ORIGINS", "")),
		AllowedHosts:   splitAndTrim(getenv("NAVDOCK_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("NAVDOCK_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("NAVDOCK_TRUST_PROXY", true),

		// Admin rate limiting
		AdminRateBurst:  getenvInt("NAVDOCK_ADMIN_RATE_BURST", 30),
		AdminRatePerMin: getenvInt("NAVDOCK_ADMIN_RATE_PER_MIN", 60),
	}

	if len(cfg.AdminSecret) < 8 {
		panic("❌ FATAL: NAVDOCK_ADMIN_SECRET must be at least 8 characters")
	}
	if !strings.Contains(cfg.IconServiceURL, "%s") {
		panic(fmt.Sprintf("❌ FATAL: NAVDOCK_ICON_SERVICE_URL must contain a %%s host placeholder, got %q", cfg.IconServiceURL))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.AdminSecret = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
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

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
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
