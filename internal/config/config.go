// Package config handles scanner configuration
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AssetDir           string
	Locale             string
	ForSale            bool
	LogLevel           string
	HTTPAddr           string
	GRPCAddr           string
	TessdataPrefix     string
	TesseractBin       string
	MaxConcurrentScans int
	MaxUploadMB        int
	LocaleSeed         uint64
}

// Load reads the environment, after filling it from a .env file if one
// exists. Variables already set win over the file.
func Load() *Config {
	loadDotEnv(getEnv("CATALOG_ENV_FILE", ".env"))

	return &Config{
		AssetDir:           getEnv("CATALOG_ASSET_DIR", "assets"),
		Locale:             getEnv("CATALOG_LOCALE", "auto"),
		ForSale:            getEnvBool("CATALOG_FOR_SALE", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8000"),
		GRPCAddr:           getEnv("GRPC_ADDR", ":50051"),
		TessdataPrefix:     getEnv("TESSDATA_PREFIX", ""),
		TesseractBin:       getEnv("TESSERACT_BIN", "tesseract"),
		MaxConcurrentScans: getEnvInt("MAX_CONCURRENT_SCANS", 2),
		MaxUploadMB:        getEnvInt("MAX_UPLOAD_MB", 200),
		LocaleSeed:         getEnvUint("LOCALE_SEED", 0),
	}
}

// ItemsDir is where the per-locale item databases live.
func (c *Config) ItemsDir() string {
	return filepath.Join(c.AssetDir, "items")
}

// MaxUploadBytes is the request body limit for uploaded media.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvUint(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}
