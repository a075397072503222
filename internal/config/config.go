package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreBackend string // sqlite, redis or memory
	SQLitePath   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	HTTPAddr           string
	AllowedOrigins     []string
	RateLimitPerMinute int
	AdminPassword      string
	SessionTTL         time.Duration
	Location           *time.Location // calendar day used for streaks and daily limits

	GroupID         string
	BotPhone        string
	ReplyDelayMinMs int  // Minimum delay before reply (milliseconds)
	ReplyDelayMaxMs int  // Maximum delay before reply (milliseconds), 0 = use min as fixed
	ShowTyping      bool // Show typing indicator during delay

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}

	tz := getenv("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, falling back to local time", tz)
		loc = time.Local
	}

	return Config{
		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", "sqlite")),
		SQLitePath:   getenv("SQLITE_PATH", "./data/ecoplay.db"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),
		RedisPrefix:   getenv("REDIS_PREFIX", "ecoplay"),

		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		AllowedOrigins:     getenvList("ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getenvInt("RATE_LIMIT_PER_MINUTE", 120),
		AdminPassword:      getenv("ADMIN_PASSWORD", ""),
		SessionTTL:         time.Duration(getenvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		Location:           loc,

		GroupID:         getenv("GROUP_ID", ""),
		BotPhone:        getenv("BOT_PHONE", ""),
		ReplyDelayMinMs: getenvInt("REPLY_DELAY_MIN_MS", 0),
		ReplyDelayMaxMs: getenvInt("REPLY_DELAY_MAX_MS", 0),
		ShowTyping:      getenvBool("SHOW_TYPING", false),

		LogLevel:      strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPath:       getenv("LOG_PATH", ""),
		LogMaxSizeMB:  getenvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getenvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getenvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   getenvBool("LOG_COMPRESS", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
