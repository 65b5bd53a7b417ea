package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds server settings read from the environment
type Config struct {
	MongoURI string
	MongoDB  string
	RedisURI string
	Port     string

	JWTSecret     string
	OwnerUsername string
	OwnerPassword string

	CORSAllowedOrigins []string

	AnalyticsCacheTTL time.Duration
	SessionTTL        time.Duration

	// MaxAnalyticsSubmissions caps how many submissions feed one analytics run
	MaxAnalyticsSubmissions int64

	Grading *GradingConfig
}

// Load reads the environment, falling back to local development defaults
func Load() *Config {
	return &Config{
		MongoURI:                getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:                 getEnvOrDefault("MONGO_DB", "formflow"),
		RedisURI:                RedisAddr(getEnvOrDefault("REDIS_URI", "localhost:6379")),
		Port:                    getEnvOrDefault("PORT", "8080"),
		JWTSecret:               getEnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		OwnerUsername:           getEnvOrDefault("OWNER_USERNAME", "admin"),
		OwnerPassword:           getEnvOrDefault("OWNER_PASSWORD", "admin"),
		CORSAllowedOrigins:      splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		AnalyticsCacheTTL:       getDurationOrDefault("ANALYTICS_CACHE_TTL", 5*time.Minute),
		SessionTTL:              getDurationOrDefault("SESSION_TTL", 24*time.Hour),
		MaxAnalyticsSubmissions: int64(getIntOrDefault("MAX_ANALYTICS_SUBMISSIONS", 10000)),
		Grading:                 DefaultGradingConfig(),
	}
}

// RedisAddr strips a redis:// prefix so the value can be used as an address
func RedisAddr(uri string) string {
	return strings.TrimPrefix(uri, "redis://")
}

// AllowsOrigin reports whether CORS should echo origin back
func (c *Config) AllowsOrigin(origin string) bool {
	for _, o := range c.CORSAllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

// getDurationOrDefault accepts Go durations ("90s") or plain seconds ("90")
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
