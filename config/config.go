package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`

	// Client-side request throttle in requests per second. 0 disables it.
	MaxRequestsPerSec float64 `mapstructure:"MAX_REQUESTS_PER_SEC"`

	// Credential storage. Backend is "sqlite" or "redis".
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`

	// Redis configuration (used when STORAGE_BACKEND is "redis").
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`

	// Default term when none has been persisted yet.
	DefaultTermID int `mapstructure:"DEFAULT_TERM_ID"`
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
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_SEC", 0)
	viper.SetDefault("STORAGE_BACKEND", "sqlite")
	viper.SetDefault("SQLITE_PATH", "portal.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("DEFAULT_TERM_ID", 4)

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
