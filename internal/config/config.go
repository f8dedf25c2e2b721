// Package config содержит логику чтения конфигурации сервиса маркетплейса.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса маркетплейса.
type Config struct {
	RunAddress       string `env:"RUN_ADDRESS"`
	DatabaseURI      string `env:"DATABASE_URI"`
	JWTSecret        string `env:"JWT_SECRET"`
	MailRelayAddress string `env:"MAIL_RELAY_ADDRESS"`
	FrontendAddress  string `env:"FRONTEND_ADDRESS"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envJWTSecret := cfg.JWTSecret
	envMailRelay := cfg.MailRelayAddress
	envFrontend := cfg.FrontendAddress

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.JWTSecret, "s", "", "secret key for signing tokens")
	flag.StringVar(&cfg.MailRelayAddress, "m", "", "mail relay address")
	flag.StringVar(&cfg.FrontendAddress, "f", "", "frontend address for verification redirect")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envJWTSecret != "" {
		cfg.JWTSecret = envJWTSecret
	}
	if envMailRelay != "" {
		cfg.MailRelayAddress = envMailRelay
	}
	if envFrontend != "" {
		cfg.FrontendAddress = envFrontend
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "markethub-secret"
	}

	return cfg, nil
}
