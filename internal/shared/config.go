package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const DefaultAPIBaseURL = "http://localhost:3000"

// DefaultWarmLocations seeds the cache warmer when WARM_LOCATIONS is unset.
const DefaultWarmLocations = "HSR Layout,Indiranagar,Koramangala,Whitefield,Marathahalli"

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	APIBaseURL      string
	APITimeout      time.Duration
	APIRPS          int
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	CacheTTL        time.Duration
	MySQLDSN        string
	DefaultLocation string
	CORSOrigins     []string
	BrowseLimit     int
}

// Load reads an optional .env file, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		APIBaseURL:      strings.TrimRight(env("RENTHUB_API_BASE_URL", DefaultAPIBaseURL), "/"),
		APITimeout:      time.Duration(atoi("API_TIMEOUT_SECONDS", 30)) * time.Second,
		APIRPS:          atoi("API_RPS", 10),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 120)) * time.Second,
		MySQLDSN:        env("MYSQL_DSN", ""),
		DefaultLocation: env("DEFAULT_LOCATION", "HSR Layout"),
		CORSOrigins:     list(env("CORS_ORIGINS", "http://localhost:5173")),
		BrowseLimit:     atoi("BROWSE_LIMIT", 50),
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty, search cache disabled")
	}
	if c.MySQLDSN == "" {
		log.Info().Msg("MYSQL_DSN is empty, search history disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func list(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
