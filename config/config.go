package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the handlers need from the environment. It is
// built once in main and passed down; handlers never read env vars on their
// own, so a missing variable can only fail here.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SenderEmail   string
	OperatorEmail string

	TokenSecret string

	RedisURL string
}

// LoadEnv loads a .env file if one is present. Real deployments set the
// variables directly, so a missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load builds the process configuration from the environment. It returns an
// error naming the first missing variable so startup fails closed instead of
// running with an empty secret or sender.
func Load() (*Config, error) {
	cfg := &Config{
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SenderEmail:   os.Getenv("SENDER_EMAIL"),
		OperatorEmail: os.Getenv("OPERATOR_EMAIL"),
		TokenSecret:   os.Getenv("BOOKING_TOKEN_SECRET"),
		RedisURL:      os.Getenv("REDIS_URL"),
	}

	required := []struct {
		name  string
		value string
	}{
		{"SMTP_HOST", cfg.SMTPHost},
		{"SMTP_USERNAME", cfg.SMTPUsername},
		{"SMTP_PASSWORD", cfg.SMTPPassword},
		{"SENDER_EMAIL", cfg.SenderEmail},
		{"OPERATOR_EMAIL", cfg.OperatorEmail},
		{"BOOKING_TOKEN_SECRET", cfg.TokenSecret},
		{"REDIS_URL", cfg.RedisURL},
	}
	for _, v := range required {
		if v.value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", v.name)
		}
	}

	portStr := os.Getenv("SMTP_PORT")
	if portStr == "" {
		return nil, fmt.Errorf("missing required environment variable SMTP_PORT")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", portStr, err)
	}
	cfg.SMTPPort = port

	return cfg, nil
}
