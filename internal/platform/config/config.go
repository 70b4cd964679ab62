package config

import (
	"errors"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is centralized process configuration. Keep infra values here and
// pass typed config into builders.
type Config struct {
	ServiceName string        `env:"SERVICE_NAME" env-default:"plume"`
	HTTPPort    string        `env:"HTTP_PORT" env-default:"8080"`
	PostgresDSN string        `env:"POSTGRES_DSN"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	BcryptCost  int           `env:"BCRYPT_COST" env-default:"0"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}
