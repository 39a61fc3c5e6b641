package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultEnvironment     = "development"
	defaultTimezone        = "America/New_York"
	defaultGenerationEvery = 24 * time.Hour
	defaultGenerationWeeks = 1
	defaultRedisLockTTL    = 10 * time.Minute
)

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string

	// MigrationsDir - каталог с миграциями; пусто = встроенные в бинарник
	MigrationsDir string

	// RedisAddr - адрес Redis для распределённой блокировки; пусто = локальная
	RedisAddr    string
	RedisLockTTL time.Duration

	// Location - локация, в которой трактуется время слотов расписания
	Location *time.Location

	AdminTelegramIDs []int64

	GenerationInterval   time.Duration
	GenerationWeeksAhead int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	log.Printf("Config loaded (env=%s, timezone=%s)\n", cfg.Environment, cfg.Location)
	return cfg, nil
}

// FromEnv собирает конфигурацию через getenv
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDSN:                getenv("DB_DSN"),
		TelegramToken:        getenv("TELEGRAM_TOKEN"),
		Environment:          getenv("ENV"),
		MigrationsDir:        getenv("MIGRATIONS_DIR"),
		RedisAddr:            getenv("REDIS_ADDR"),
		RedisLockTTL:         defaultRedisLockTTL,
		GenerationInterval:   defaultGenerationEvery,
		GenerationWeeksAhead: defaultGenerationWeeks,
	}

	if cfg.Environment == "" {
		cfg.Environment = defaultEnvironment
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	tz := getenv("TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	if raw := getenv("ADMIN_TELEGRAM_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse ADMIN_TELEGRAM_IDS entry %q: %w", part, err)
			}
			cfg.AdminTelegramIDs = append(cfg.AdminTelegramIDs, id)
		}
	}

	if raw := getenv("GENERATION_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse GENERATION_INTERVAL: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("GENERATION_INTERVAL must be positive, got %s", interval)
		}
		cfg.GenerationInterval = interval
	}

	if raw := getenv("GENERATION_WEEKS_AHEAD"); raw != "" {
		weeks, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse GENERATION_WEEKS_AHEAD: %w", err)
		}
		if weeks < 0 {
			return nil, fmt.Errorf("GENERATION_WEEKS_AHEAD must not be negative, got %d", weeks)
		}
		cfg.GenerationWeeksAhead = weeks
	}

	if raw := getenv("REDIS_LOCK_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_LOCK_TTL: %w", err)
		}
		cfg.RedisLockTTL = ttl
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsAdminTelegramID проверяет, указан ли Telegram ID в списке администраторов
func (c *Config) IsAdminTelegramID(id int64) bool {
	for _, admin := range c.AdminTelegramIDs {
		if admin == id {
			return true
		}
	}
	return false
}
