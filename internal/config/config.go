// Package config loads application configuration from environment
// variables.  Configuration is constructed once at startup and passed
// explicitly to each component; nothing in the application reads ambient
// process-wide state lazily on first use.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// AllocatorRedis and AllocatorMySQL are the two allocation backends.  Only
// one is active per deployment.
const (
	AllocatorRedis = "redis"
	AllocatorMySQL = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign admin tokens
	AdminPassHash string // bcrypt hash of the admin password
	AdminTTLMin   int    // admin token time-to-live in minutes
	AllocatorMode string // "redis" (fast store) or "mysql" (transactional fallback)
	SeedFile      string // path of the initial dataset replayed by admin reseed

	DBMaxOpen     int           // ledger pool size; sized for on-sale bursts
	DBMaxIdle     int           // idle connections kept warm between bursts
	DBConnMaxLife time.Duration // recycle interval for pooled connections
}

// Load reads configuration from environment variables.  Required variables
// are enforced by must(); missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		AdminPassHash: must("ADMIN_PASSWORD_HASH"),
		AdminTTLMin:   envInt("ADMIN_TOKEN_TTL_MIN", 60),
		AllocatorMode: envStr("ALLOCATOR_MODE", AllocatorRedis),
		SeedFile:      envStr("SEED_FILE", "config/initial_data.sql"),
		DBMaxOpen:     envInt("DB_MAX_OPEN_CONNS", 50),
		DBMaxIdle:     envInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLife: envDur("DB_CONN_MAX_LIFETIME", 15*time.Minute),
	}
	if cfg.AllocatorMode != AllocatorRedis && cfg.AllocatorMode != AllocatorMySQL {
		log.Fatalf("invalid ALLOCATOR_MODE: %q (want %q or %q)", cfg.AllocatorMode, AllocatorRedis, AllocatorMySQL)
	}
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
