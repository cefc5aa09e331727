package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	Port                string
	DBConn              string
	LogLevel            string
	JWTSecret           string
	ModelPath           string
	OccupationCodecPath string
	CityTierCodecPath   string
	PredictTimeout      time.Duration
	SummarySchedule     string
	SMTPHost            string
	SMTPPort            string
	SMTPUsername        string
	SMTPPassword        string
	SenderEmail         string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	predictTimeout, err := time.ParseDuration(getEnv("PREDICT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICT_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DBConn:              getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=advisor sslmode=disable"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		ModelPath:           getEnv("MODEL_PATH", "models/expense_model.pmml"),
		OccupationCodecPath: getEnv("OCCUPATION_CODEC_PATH", "models/occupation_encoder.json"),
		CityTierCodecPath:   getEnv("CITY_CODEC_PATH", "models/city_encoder.json"),
		PredictTimeout:      predictTimeout,
		SummarySchedule:     getEnv("SUMMARY_SCHEDULE", "0 9 * * *"),
		SMTPHost:            getEnv("SMTP_HOST", "localhost"),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SenderEmail:         getEnv("SENDER_EMAIL", "advisor@localhost"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("MODEL_PATH is required")
	}
	if cfg.OccupationCodecPath == "" || cfg.CityTierCodecPath == "" {
		return nil, fmt.Errorf("codec artifact paths are required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
