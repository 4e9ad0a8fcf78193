package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Exchange struct {
	APIKey    string
	APISecret string
	BaseURL   string // REST, e.g. https://fapi.binance.com
	WSURL     string // market streams, e.g. wss://fstream.binance.com

	// RecvWindow is how stale a signed request's timestamp may be on arrival.
	// Long OCO polls on a drifting clock may want more than the default.
	RecvWindow time.Duration
	// ResyncInterval re-runs the server time sync before a signed call once the
	// last sync is older than this. Zero disables re-sync.
	ResyncInterval time.Duration

	HTTPTimeout time.Duration
	SyncTimeout time.Duration
}

type Log struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	Level      string
}

type Config struct {
	Exchange Exchange
	Log      Log
}

func Default() Config {
	return Config{
		Exchange: Exchange{
			BaseURL:     "https://fapi.binance.com",
			WSURL:       "wss://fstream.binance.com",
			RecvWindow:  5000 * time.Millisecond,
			HTTPTimeout: 15 * time.Second,
			SyncTimeout: 5 * time.Second,
		},
		Log: Log{
			File:       "bot.log",
			MaxSizeMB:  5,
			MaxBackups: 3,
			Level:      "info",
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if it exists) and environment variables.
// Priority: ENV > .env file > defaults. Missing credentials are not an error here; the
// exchange client rejects them at construction.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg.Exchange.APIKey = os.Getenv("BINANCE_API_KEY")
	cfg.Exchange.APISecret = os.Getenv("BINANCE_API_SECRET")
	cfg.Exchange.BaseURL = getEnv("BINANCE_BASE_URL", cfg.Exchange.BaseURL)
	cfg.Exchange.WSURL = getEnv("BINANCE_WS_URL", cfg.Exchange.WSURL)

	if ms, ok := getInt("BINANCE_RECV_WINDOW_MS"); ok && ms > 0 {
		cfg.Exchange.RecvWindow = time.Duration(ms) * time.Millisecond
	}
	if sec, ok := getInt("BINANCE_RESYNC_INTERVAL_SEC"); ok && sec >= 0 {
		cfg.Exchange.ResyncInterval = time.Duration(sec) * time.Second
	}
	if sec, ok := getInt("HTTP_TIMEOUT_SEC"); ok && sec > 0 {
		cfg.Exchange.HTTPTimeout = time.Duration(sec) * time.Second
	}

	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	if mb, ok := getInt("LOG_MAX_SIZE_MB"); ok && mb > 0 {
		cfg.Log.MaxSizeMB = mb
	}
	if n, ok := getInt("LOG_MAX_BACKUPS"); ok && n >= 0 {
		cfg.Log.MaxBackups = n
	}

	return cfg
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
