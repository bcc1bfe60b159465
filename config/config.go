package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort             string
	UpstreamBaseURL        string
	CacheDBPath            string
	CacheTTLMinutes        string
	RefreshIntervalSeconds string
	DefaultMaxPlayers      string
	AdminContact           string
	LogLevel               string
}

// RefreshConfig holds the refresh loop configuration
type RefreshConfig struct {
	Interval    time.Duration `json:"interval"`
	CacheTTL    time.Duration `json:"cache_ttl"`
	HTTPTimeout time.Duration `json:"http_timeout"`
}

// DefaultRefreshConfig returns the refresh loop defaults: a 3 second room
// re-fetch interval and a 5 minute snapshot staleness window.
func DefaultRefreshConfig() *RefreshConfig {
	return &RefreshConfig{
		Interval:    3 * time.Second,
		CacheTTL:    5 * time.Minute,
		HTTPTimeout: 10 * time.Second,
	}
}

// ProxyCacheConfig holds configuration for the short-lived pass-through cache
type ProxyCacheConfig struct {
	DefaultTTL time.Duration `json:"default_ttl"`
	MaxSize    int           `json:"max_size"`
}

// DefaultProxyCacheConfig returns default pass-through cache configuration
func DefaultProxyCacheConfig() *ProxyCacheConfig {
	return &ProxyCacheConfig{
		DefaultTTL: 30 * time.Second,
		MaxSize:    500,
	}
}

// GetCacheTTL returns the lobby snapshot TTL from environment or default
func (c *Config) GetCacheTTL() time.Duration {
	if c.CacheTTLMinutes == "" {
		return 5 * time.Minute
	}

	minutes, err := strconv.Atoi(c.CacheTTLMinutes)
	if err != nil || minutes <= 0 {
		logrus.Warnf("Invalid CACHE_TTL_MINUTES value: %s, using default 5 minutes", c.CacheTTLMinutes)
		return 5 * time.Minute
	}

	return time.Duration(minutes) * time.Minute
}

// GetRefreshInterval returns the periodic room refresh interval from environment or default
func (c *Config) GetRefreshInterval() time.Duration {
	if c.RefreshIntervalSeconds == "" {
		return 3 * time.Second
	}

	seconds, err := strconv.Atoi(c.RefreshIntervalSeconds)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid REFRESH_INTERVAL_SECONDS value: %s, using default 3 seconds", c.RefreshIntervalSeconds)
		return 3 * time.Second
	}

	return time.Duration(seconds) * time.Second
}

// GetDefaultMaxPlayers returns the capacity shown when a room omits max_players
func (c *Config) GetDefaultMaxPlayers() int {
	if c.DefaultMaxPlayers == "" {
		return 10
	}

	n, err := strconv.Atoi(c.DefaultMaxPlayers)
	if err != nil || n <= 0 {
		logrus.Warnf("Invalid DEFAULT_MAX_PLAYERS value: %s, using default 10", c.DefaultMaxPlayers)
		return 10
	}

	return n
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		UpstreamBaseURL:        getEnv("UPSTREAM_BASE_URL", "http://localhost:8000"),
		CacheDBPath:            getEnv("CACHE_DB_PATH", "lobby-cache.db"),
		CacheTTLMinutes:        getEnv("CACHE_TTL_MINUTES", "5"),
		RefreshIntervalSeconds: getEnv("REFRESH_INTERVAL_SECONDS", "3"),
		DefaultMaxPlayers:      getEnv("DEFAULT_MAX_PLAYERS", "10"),
		AdminContact:           getEnv("ADMIN_CONTACT", "@poker_admin"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
