package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	DBPath         string // empty -> in-memory store
	AdminUser      string
	AdminPassword  string
	MaxUploadBytes int64
	HTTPTimeout    time.Duration
	LogLevel       slog.Level
	PlatformName   string
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	maxUpload := int64(10 << 20)
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUpload = n << 20
		}
	}
	return Config{
		Port:           envOr("PORT", "8080"),
		DBPath:         os.Getenv("DB_PATH"),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		MaxUploadBytes: maxUpload,
		HTTPTimeout:    to,
		LogLevel:       lvl,
		PlatformName:   envOr("PLATFORM_NAME", "MTSE Analytics"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
