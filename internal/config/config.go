package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSheets = "sheets"
	StoreMemory = "memory"

	NotifySMTP = "smtp"
	NotifyStub = "stub"
)

type Config struct {
	AppEnv   string
	LogLevel string

	StoreBackend             string
	SpreadsheetID            string
	SheetName                string
	GoogleServiceAccountJSON string

	TeamCapacity int

	NotifyProvider string
	EmailSender    string
	EmailPassword  string
	SMTPHost       string
	SMTPPort       int
	AppURL         string

	TelegramToken  string
	TelegramChatID int64

	RedisURL string

	AdminSecret string

	HTTPAddr          string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// LoadDotEnv loads .env when present. A missing file is not an error.
func LoadDotEnv() {
	if os.Getenv("SKIP_DOTENV") == "true" {
		return
	}
	_ = godotenv.Load()
}

func FromEnv() (Config, error) {
	var c Config
	c.AppEnv = strings.ToLower(env("APP_ENV", ""))
	c.LogLevel = strings.ToLower(env("LOG_LEVEL", "info"))

	c.StoreBackend = strings.ToLower(env("STORE_BACKEND", StoreSheets))
	c.SpreadsheetID = env("GOOGLE_SHEETS_SPREADSHEET_ID", "")
	c.SheetName = env("SHEET_NAME", "Registos")
	c.GoogleServiceAccountJSON = env("GOOGLE_SERVICE_ACCOUNT_JSON", "")

	c.NotifyProvider = strings.ToLower(env("NOTIFY_PROVIDER", NotifySMTP))
	c.EmailSender = env("EMAIL_SENDER", "")
	c.EmailPassword = env("EMAIL_PASSWORD", "")
	c.SMTPHost = env("SMTP_HOST", "smtp.gmail.com")
	c.AppURL = strings.TrimRight(env("APP_URL", ""), "/")

	c.TelegramToken = env("TELEGRAM_BOT_TOKEN", "")
	c.RedisURL = env("REDIS_URL", "")
	c.AdminSecret = env("ADMIN_SECRET", "")
	c.HTTPAddr = env("HTTP_ADDR", ":8080")

	var err error
	if c.TeamCapacity, err = envInt("TEAM_CAPACITY", 2); err != nil {
		return c, err
	}
	if c.TeamCapacity < 1 {
		return c, fmt.Errorf("TEAM_CAPACITY must be at least 1")
	}
	if c.SMTPPort, err = envInt("SMTP_PORT", 465); err != nil {
		return c, err
	}
	if c.RateLimitRequests, err = envInt("RATE_LIMIT_REQUESTS", 30); err != nil {
		return c, err
	}
	if c.RateLimitWindow, err = envDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return c, err
	}
	if raw := env("TELEGRAM_CHAT_ID", ""); raw != "" {
		c.TelegramChatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
	}

	switch c.StoreBackend {
	case StoreSheets:
		if c.SpreadsheetID == "" {
			return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
		}
		if c.GoogleServiceAccountJSON == "" {
			return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
		}
	case StoreMemory:
	default:
		return c, fmt.Errorf("unknown STORE_BACKEND: %s", c.StoreBackend)
	}

	switch c.NotifyProvider {
	case NotifySMTP:
		if c.EmailSender == "" {
			return c, fmt.Errorf("EMAIL_SENDER is empty")
		}
		if c.EmailPassword == "" {
			return c, fmt.Errorf("EMAIL_PASSWORD is empty")
		}
	case NotifyStub:
	default:
		return c, fmt.Errorf("unknown NOTIFY_PROVIDER: %s", c.NotifyProvider)
	}

	return c, nil
}

func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	}
	return false
}

// TelegramEnabled reports whether organizer alerts should be sent.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return v, nil
}
