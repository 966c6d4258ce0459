package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Slot generation.
	SlotGranularityMinutes int `mapstructure:"SLOT_GRANULARITY_MINUTES"`

	// Notification providers.
	SendgridAPIKey       string `mapstructure:"SENDGRID_API_KEY"`
	EmailFrom            string `mapstructure:"EMAIL_FROM"`
	EmailFromName        string `mapstructure:"EMAIL_FROM_NAME"`
	AfricasTalkingAPIKey string `mapstructure:"AFRICAS_TALKING_API_KEY"`
	AfricasTalkingUser   string `mapstructure:"AFRICAS_TALKING_USERNAME"`
	AfricasTalkingSender string `mapstructure:"AFRICAS_TALKING_SENDER_ID"`
	NotifyTimeoutSeconds int    `mapstructure:"NOTIFY_TIMEOUT_SECONDS"`
	ReminderLeadMinutes  int    `mapstructure:"REMINDER_LEAD_MINUTES"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("SLOT_GRANULARITY_MINUTES", 30)
	viper.SetDefault("EMAIL_FROM_NAME", "Harmony")
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 120)

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
