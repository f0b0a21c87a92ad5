package config

import (
	"os"
	"strconv"

	"kuztube_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// Economy policy: whether a consumed booster id may be bought again.
	AllowBoosterRepurchase bool

	// Rate limits
	APIRateLimit       int
	APIRateWindowSec   int
	EventRateLimit     int
	EventRateWindowSec int
}

// Load reads configuration from the environment (and .env if present).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	logJSON := os.Getenv("LOG_JSON") == "true"
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	// Booster repurchase is allowed unless explicitly disabled.
	allowRepurchase := os.Getenv("ALLOW_BOOSTER_REPURCHASE") != "false"

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}
	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	// reward events are cheap but spammable, keep a separate per-user limit
	eventRateLimit := 120
	if v := os.Getenv("EVENT_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			eventRateLimit = n
		}
	}
	eventRateWindow := 60
	if v := os.Getenv("EVENT_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			eventRateWindow = n
		}
	}

	return &Config{
		AppPort:                port,
		DatabaseURL:            dbURL,
		JWTSecret:              jwtSecret,
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,
		LogLevel:               logLevel,
		LogJSON:                logJSON,
		AllowBoosterRepurchase: allowRepurchase,
		APIRateLimit:           apiRateLimit,
		APIRateWindowSec:       apiRateWindow,
		EventRateLimit:         eventRateLimit,
		EventRateWindowSec:     eventRateWindow,
	}
}
