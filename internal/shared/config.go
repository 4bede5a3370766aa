package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	HTTPRPS      int
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	PlatformBase string
	PlatformKey  string
	Workers      int
	TenantIDs    []string
	CacheTTL     time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		HTTPRPS:      atoi("HTTP_RPS", 100),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/staydeal?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		PlatformBase: env("PLATFORM_BASE_URL", "https://api.staydeal.app"),
		PlatformKey:  env("PLATFORM_API_KEY", ""),
		Workers:      atoi("SYNC_WORKERS", 8),
		TenantIDs:    splitList(os.Getenv("TENANT_IDS")),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.PlatformKey == "" {
		log.Warn().Msg("PLATFORM_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
