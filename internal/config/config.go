package config

import (
	"os"
	"strconv"
	"time"

	"astrorekha_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	// PayU merchant credentials (request/response hash signing)
	PayUMerchantKey  string
	PayUMerchantSalt string

	// Razorpay API credentials
	RazorpayKeyID     string
	RazorpayKeySecret string

	AdminJWTSecret    string
	DevTesterPassword string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GatewayTimeout time.Duration
}

// Load reads configuration from the environment. Missing gateway secrets are a
// hard failure: hash and signature code must never run with an empty salt.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           os.Getenv("APP_PORT"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PayUMerchantKey:   os.Getenv("PAYU_MERCHANT_KEY"),
		PayUMerchantSalt:  os.Getenv("PAYU_MERCHANT_SALT"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		AdminJWTSecret:    os.Getenv("ADMIN_JWT_SECRET"),
		DevTesterPassword: os.Getenv("DEV_TESTER_PASSWORD"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		GatewayTimeout:    15 * time.Second,
	}

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}
	if cfg.PayUMerchantKey == "" || cfg.PayUMerchantSalt == "" {
		logger.Fatal("PAYU_MERCHANT_KEY / PAYU_MERCHANT_SALT are not set")
	}
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		logger.Fatal("RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET are not set")
	}
	if cfg.AdminJWTSecret == "" {
		logger.Fatal("ADMIN_JWT_SECRET is not set")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}

	if v := os.Getenv("GATEWAY_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GatewayTimeout = time.Duration(n) * time.Second
		}
	}

	return cfg
}
