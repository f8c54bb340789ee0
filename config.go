package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hongaldhruv-del/SalesSavvy/database"
	"github.com/hongaldhruv-del/SalesSavvy/gateway"
	aws_pkg "github.com/hongaldhruv-del/SalesSavvy/pkg/aws"
)

const (
	dbSecretName       = "salessavvy/DB_CREDENTIALS"
	razorpaySecretName = "salessavvy/RAZORPAY"
)

type Config struct {
	Env         string
	Port        string
	ServiceName string
	DB          database.Config

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayTimeout   time.Duration
	Currency          string

	PaymentSNSTopicARN string
	RedisAddr          string
	RedisPassword      string
	AllowedOrigins     []string
}

// LoadConfig reads the environment, optionally overlays Secrets Manager
// values when AWS_USE_SECRETS=true, and fails when anything required is
// missing.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		applySecrets(ctx, cfg, aws_pkg.NewSecretsClient(awsCfg))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromEnv() (*Config, error) {
	timeout := gateway.DefaultTimeout
	if raw := os.Getenv("RAZORPAY_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid RAZORPAY_TIMEOUT %q", raw)
		}
		timeout = d
	}

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		ServiceName: getEnv("SERVICE_NAME", "salessavvy"),
		DB: database.Config{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),
		},
		RazorpayKeyID:      os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayTimeout:    timeout,
		Currency:           getEnv("PAYMENT_CURRENCY", "INR"),
		PaymentSNSTopicARN: os.Getenv("PAYMENT_SNS_TOPIC_ARN"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5174")),
	}, nil
}

// applySecrets overrides credentials with whatever the secrets hold. A
// missing secret leaves the environment values in place.
func applySecrets(ctx context.Context, cfg *Config, sm aws_pkg.SecretGetter) {
	if m, err := aws_pkg.GetSecretMap(ctx, sm, dbSecretName); err == nil {
		override(&cfg.DB.User, m["POSTGRES_USER"])
		override(&cfg.DB.Password, m["POSTGRES_PASSWORD"])
		override(&cfg.DB.DBName, m["POSTGRES_DB"])
		override(&cfg.DB.Host, m["POSTGRES_HOST"])
		override(&cfg.DB.Port, m["POSTGRES_PORT"])
	}
	if m, err := aws_pkg.GetSecretMap(ctx, sm, razorpaySecretName); err == nil {
		override(&cfg.RazorpayKeyID, m["RAZORPAY_KEY_ID"])
		override(&cfg.RazorpayKeySecret, m["RAZORPAY_KEY_SECRET"])
	}
}

func (c *Config) validate() error {
	var missing []string
	if c.RazorpayKeyID == "" {
		missing = append(missing, "RAZORPAY_KEY_ID")
	}
	if c.RazorpayKeySecret == "" {
		missing = append(missing, "RAZORPAY_KEY_SECRET")
	}
	if c.DB.Host == "" || c.DB.User == "" || c.DB.Password == "" || c.DB.DBName == "" {
		missing = append(missing, "POSTGRES_HOST/USER/PASSWORD/DB")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
