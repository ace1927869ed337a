package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	APIKey string // X-API-Key value; empty disables API key auth

	DatabasePath  string // path to the sqlite database file
	IconStorePath string // directory for the favicon blob store (empty = icons not stored)

	MaxImportBytes int64 // byte ceiling for uploaded import payloads

	FaviconRefreshInterval time.Duration // interval between favicon retry passes (default: 1h)
	TagGCInterval          time.Duration // interval between unused-tag sweeps (default: 6h)

	// Redis (optional, empty RedisAddr disables the favicon cache)
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 2s)
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries (ex: 2s, grows exponentially)

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

// fileConfig mirrors the optional YAML config file. Every field there is a
// default; environment variables always win.
type fileConfig struct {
	ListenPort    string `yaml:"listen_port"`
	LogLevel      string `yaml:"log_level"`
	APIKey        string `yaml:"api_key"`
	DatabasePath  string `yaml:"database_path"`
	IconStorePath string `yaml:"icon_store_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	AllowedHosts  string `yaml:"allowed_hosts"`
	AllowedCIDRS  string `yaml:"allowed_cidrs"`
}

// Load builds the configuration from the optional YAML file named by
// ANCHORMARKS_CONFIG_FILE, overridden by ANCHORMARKS_* environment variables.
func Load() *Config {
	file := loadFile(os.Getenv("ANCHORMARKS_CONFIG_FILE"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ANCHORMARKS_LISTEN_PORT", withDefault(file.ListenPort, ":8080")),
		ShutdownTimeout: mustDuration("ANCHORMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ANCHORMARKS_LOG_LEVEL", withDefault(file.LogLevel, "info")),
		PrettyLog: mustBool("ANCHORMARKS_PRETTY_LOG", true),

		// Auth
		APIKey: getenv("ANCHORMARKS_API_KEY", file.APIKey),

		// Storage
		DatabasePath:  getenv("ANCHORMARKS_DB_PATH", withDefault(file.DatabasePath, "anchormarks.db")),
		IconStorePath: getenv("ANCHORMARKS_ICON_PATH", file.IconStorePath),

		// Imports
		MaxImportBytes: int64(getenvInt("ANCHORMARKS_MAX_IMPORT_BYTES", 32<<20)),

		// Background work
		FaviconRefreshInterval: mustDuration("ANCHORMARKS_FAVICON_REFRESH_INTERVAL", time.Hour),
		TagGCInterval:          mustDuration("ANCHORMARKS_TAG_GC_INTERVAL", 6*time.Hour),

		// Redis settings
		RedisAddr:           getenv("ANCHORMARKS_REDIS_ADDR", file.RedisAddr),
		RedisPassword:       getenv("ANCHORMARKS_REDIS_PASSWORD", file.RedisPassword),
		RedisDB:             getenvInt("ANCHORMARKS_REDIS_DB", 0),
		RedisMaxWait:        mustDuration("ANCHORMARKS_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("ANCHORMARKS_REDIS_PING_TIMEOUT", 2*time.Second),
		RedisConnectTimeout: mustDuration("ANCHORMARKS_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("ANCHORMARKS_REDIS_RETRY_INTERVAL", 2*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("ANCHORMARKS_ALLOWED_HOSTS", file.AllowedHosts)),
		AllowedCIDRS: splitAndTrim(getenv("ANCHORMARKS_ALLOWED_CIDRS", file.AllowedCIDRS)),
		TrustProxy:   mustBool("ANCHORMARKS_TRUST_PROXY", false),
	}

	return cfg
}

func loadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Cannot read config file %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid config file %s: %v", path, err))
	}
	return fc
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func withDefault(v, def string) string {
	if v != "" {
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
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
