// Package config содержит логику чтения конфигурации клиента витрины.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации клиента витрины и мок-сервера API.
type Config struct {
	APIAddress       string        `env:"API_ADDRESS"`
	RunAddress       string        `env:"RUN_ADDRESS"`
	CredentialsFile  string        `env:"CREDENTIALS_FILE"`
	TransportRetries int           `env:"TRANSPORT_RETRIES"`
	NotificationTTL  time.Duration `env:"NOTIFICATION_TTL"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{NotificationTTL: -1, TransportRetries: -1}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envAPIAddress := cfg.APIAddress
	envRunAddress := cfg.RunAddress
	envCredentialsFile := cfg.CredentialsFile
	envTransportRetries := cfg.TransportRetries
	envNotificationTTL := cfg.NotificationTTL

	flag.StringVar(&cfg.APIAddress, "a", "http://localhost:5000/api", "base URL of the storefront API")
	flag.StringVar(&cfg.RunAddress, "l", "localhost:5000", "address and port for the mock API server")
	flag.StringVar(&cfg.CredentialsFile, "c", "", "path to the credentials file (empty for in-memory)")
	flag.IntVar(&cfg.TransportRetries, "r", 0, "transport-level retries for transient failures")
	flag.DurationVar(&cfg.NotificationTTL, "n", 3*time.Second, "notification auto-dismiss interval")

	flag.Parse()

	if envAPIAddress != "" {
		cfg.APIAddress = envAPIAddress
	}
	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envCredentialsFile != "" {
		cfg.CredentialsFile = envCredentialsFile
	}
	if envTransportRetries >= 0 {
		cfg.TransportRetries = envTransportRetries
	}
	if envNotificationTTL >= 0 {
		cfg.NotificationTTL = envNotificationTTL
	}

	if cfg.APIAddress == "" {
		cfg.APIAddress = "http://localhost:5000/api"
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = 3 * time.Second
	}
	if cfg.TransportRetries < 0 {
		cfg.TransportRetries = 0
	}

	return cfg, nil
}
