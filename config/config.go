package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DBConfig holds database configuration
type DBConfig struct {
	URL      string // takes precedence when set
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string
func (c *DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GatewayConfig holds payment gateway credentials. A gateway with empty
// credentials fails verification closed.
type GatewayConfig struct {
	RazorpayKeyID      string
	RazorpayKeySecret  string
	PayUMerchantKey    string
	PayUMerchantSalt   string
	StripeWebhookKey   string
	PayPalWebhookToken string
}

// Config holds all configuration
type Config struct {
	Env         string
	Port        string
	JWTSecret   string
	AdminAPIKey string
	DB          DBConfig
	Gateways    GatewayConfig
	// DefaultCommissionRate seeds the platform settings row when none exists.
	DefaultCommissionRate decimal.Decimal
}

// Load reads configuration from the environment. Rate misconfiguration is a
// startup failure, never a per-request error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
		DB: DBConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "marketplace"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Gateways: GatewayConfig{
			RazorpayKeyID:      os.Getenv("RAZORPAY_KEY_ID"),
			RazorpayKeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
			PayUMerchantKey:    os.Getenv("PAYU_MERCHANT_KEY"),
			PayUMerchantSalt:   os.Getenv("PAYU_MERCHANT_SALT"),
			StripeWebhookKey:   os.Getenv("STRIPE_WEBHOOK_KEY"),
			PayPalWebhookToken: os.Getenv("PAYPAL_WEBHOOK_TOKEN"),
		},
	}

	rate, err := decimal.NewFromString(getEnv("DEFAULT_COMMISSION_RATE", "5.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_COMMISSION_RATE: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("invalid DEFAULT_COMMISSION_RATE %s: must be within [0,100]", rate)
	}
	cfg.DefaultCommissionRate = rate

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
