package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env     string
	LogFile string

	DBDSN          string
	DBConnAttempts int
	SeedDemo       bool

	ServerPort     string
	WebPort        string
	MetricsPort    string
	WebMetricsPort string

	APIBaseURL string
	APITimeout time.Duration

	SessionSecret string
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "local")
	v.SetDefault("LOG_FILE", "logs/purchase.log")
	v.SetDefault("DB_CONN_ATTEMPTS", 10)
	v.SetDefault("SEED_DEMO", false)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("WEB_PORT", "8081")
	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("WEB_METRICS_PORT", "9091")
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("API_TIMEOUT", 10*time.Second)

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		LogFile:        v.GetString("LOG_FILE"),
		DBDSN:          v.GetString("DB_DSN"),
		DBConnAttempts: v.GetInt("DB_CONN_ATTEMPTS"),
		SeedDemo:       v.GetBool("SEED_DEMO"),
		ServerPort:     v.GetString("SERVER_PORT"),
		WebPort:        v.GetString("WEB_PORT"),
		MetricsPort:    v.GetString("METRICS_PORT"),
		WebMetricsPort: v.GetString("WEB_METRICS_PORT"),
		APIBaseURL:     v.GetString("API_BASE_URL"),
		APITimeout:     v.GetDuration("API_TIMEOUT"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
	}

	if cfg.DBConnAttempts < 1 {
		cfg.DBConnAttempts = 1
	}
	return cfg, nil
}

// CheckServer: обязательные настройки REST-сервиса.
func (c *Config) CheckServer() error {
	if c.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}
	return nil
}

// CheckWeb: обязательные настройки веб-интерфейса.
func (c *Config) CheckWeb() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is not set")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	return nil
}
