package config

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage backends for the device-local document store.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	// Local persistence
	DataDir        string `env:"STOCKKEEPER_DATA_DIR"`
	StorageBackend string `env:"STORAGE_BACKEND"`

	// Generative text service
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`
	GeminiModel   string `env:"GEMINI_MODEL"`

	// Simulated cloud
	RedisAddr        string        `env:"REDIS_ADDR"`
	AuthSecret       string        `env:"AUTH_SECRET"`
	CloudLoginDelay  time.Duration `env:"CLOUD_LOGIN_DELAY"`
	CloudIODelay     time.Duration `env:"CLOUD_IO_DELAY"`
	CloudLogoutDelay time.Duration `env:"CLOUD_LOGOUT_DELAY"`

	Debug   bool `env:"STOCKKEEPER_DEBUG"`
	Version bool `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		CloudLoginDelay:  1200 * time.Millisecond,
		CloudIODelay:     2 * time.Second,
		CloudLogoutDelay: 500 * time.Millisecond,
	}
	_ = env.Parse(cfg)

	// Flags apply only when the env variables left fields empty.
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the local document store")
	flag.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "local storage backend: file|sqlite")
	flag.StringVar(&cfg.GeminiAPIKey, "api-key", cfg.GeminiAPIKey, "generative text service API key")
	flag.StringVar(&cfg.GeminiBaseURL, "api-base-url", cfg.GeminiBaseURL, "generative text service base URL")
	flag.StringVar(&cfg.GeminiModel, "api-model", cfg.GeminiModel, "generative text service model name")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address backing the simulated cloud store")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "secret signing mock cloud session tokens")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "show version and exit")

	flag.Parse()

	// Defaults
	if cfg.DataDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.DataDir = filepath.Join(dir, "StockKeeper")
		} else {
			cfg.DataDir = ".stockkeeper"
		}
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = BackendFile
	}
	if cfg.GeminiBaseURL == "" {
		cfg.GeminiBaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-flash"
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}

	return cfg
}
