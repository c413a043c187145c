package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string   `env:"ADDR" envDefault:":8080"`
	LogLevel         string   `env:"LOG_LEVEL" envDefault:"info"`
	CountdownSeconds int      `env:"COUNTDOWN_SECONDS" envDefault:"10"`
	PickCooldownMS   int      `env:"PICK_COOLDOWN_MS" envDefault:"500"`
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
