package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the console.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Storage     StorageConfig
	Redis       RedisConfig
	Watch       WatchConfig
	Logger      LoggerConfig
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type StorageConfig struct {
	Backend string // bolt, redis or memory
	Path    string
	Profile string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type WatchConfig struct {
	RefreshInterval time.Duration
	SearchDebounce  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the console can run with no setup at all.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "adminctl"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:        getString("API_BASE_URL", ""),
			RequestTimeout: getDuration("API_REQUEST_TIMEOUT", 15*time.Second),
		},
		Storage: StorageConfig{
			Backend: getString("SESSION_BACKEND", "bolt"),
			Path:    getString("SESSION_PATH", defaultSessionPath()),
			Profile: getString("SESSION_PROFILE", "default"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Watch: WatchConfig{
			RefreshInterval: getDuration("WATCH_REFRESH_INTERVAL", 30*time.Second),
			SearchDebounce:  getDuration("SEARCH_DEBOUNCE", 500*time.Millisecond),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "warn"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data/session.db"
	}
	return filepath.Join(home, ".adminctl", "session.db")
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
