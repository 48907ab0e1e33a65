package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"github.com/joho/godotenv"
)

const (
	BucketEnv = "RECEIPT_BUCKET"

	defaultPort          = "8080"
	defaultRatePerMinute = 120
)

type S3 struct {
	Backend   string
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

type Config struct {
	Port               string
	S3                 S3
	TelegramToken      string
	TelegramAdminChat  int64
	RateLimitPerMinute int
}

// Load читает окружение один раз при старте. Бакет сюда не входит, см. EnvBucket.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port: getenv("PORT", defaultPort),
		S3: S3{
			Backend:   os.Getenv("S3_BACKEND"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Region:    os.Getenv("S3_REGION"),
			UseSSL:    true,
		},
		TelegramToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		RateLimitPerMinute: defaultRatePerMinute,
	}

	if v := os.Getenv("S3_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse S3_USE_SSL: %w", err)
		}
		cfg.S3.UseSSL = b
	}

	if v := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
		cfg.TelegramAdminChat = id
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", v)
		}
		cfg.RateLimitPerMinute = n
	}

	return cfg, nil
}

// EnvBucket читает RECEIPT_BUCKET на каждом вызове
func EnvBucket() ports.BucketResolver {
	return func() string {
		return os.Getenv(BucketEnv)
	}
}

// StaticBucket — для тестов и явной конфигурации
func StaticBucket(name string) ports.BucketResolver {
	return func() string {
		return name
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
