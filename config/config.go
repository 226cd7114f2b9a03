package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisEventDB  int    `mapstructure:"REDIS_EVENT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Business hours, in minutes from midnight. Candidate start times
	// run from OPEN_MINUTE; a candidate survives only if the service
	// duration still fits before CLOSE_MINUTE.
	OpenMinute      int `mapstructure:"BOOKING_OPEN_MINUTE"`
	CloseMinute     int `mapstructure:"BOOKING_CLOSE_MINUTE"`
	SlotGranularity int `mapstructure:"SLOT_GRANULARITY_MIN"`

	// Grace period before a pending appointment becomes eligible for
	// automatic cancellation, and how often the sweep runs.
	PendingGraceMinutes int `mapstructure:"PENDING_GRACE_MINUTES"`
	ExpirySweepMinutes  int `mapstructure:"EXPIRY_SWEEP_MINUTES"`

	// Cancellation refund windows (hours before appointment start).
	FullRefundHours    int `mapstructure:"FULL_REFUND_HOURS"`
	PartialRefundHours int `mapstructure:"PARTIAL_REFUND_HOURS"`
	PartialRefundPct   int `mapstructure:"PARTIAL_REFUND_PCT"`

	// Timeout for the payment gateway hand-off.
	PaymentTimeoutSeconds int `mapstructure:"PAYMENT_TIMEOUT_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_EVENT_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "salonbook")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("BOOKING_OPEN_MINUTE", 540)   // 09:00
	viper.SetDefault("BOOKING_CLOSE_MINUTE", 1080) // 18:00; last 30-min slot starts 17:30
	viper.SetDefault("SLOT_GRANULARITY_MIN", 30)
	viper.SetDefault("PENDING_GRACE_MINUTES", 30)
	viper.SetDefault("EXPIRY_SWEEP_MINUTES", 5)
	viper.SetDefault("FULL_REFUND_HOURS", 24)
	viper.SetDefault("PARTIAL_REFUND_HOURS", 2)
	viper.SetDefault("PARTIAL_REFUND_PCT", 50)
	viper.SetDefault("PAYMENT_TIMEOUT_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
