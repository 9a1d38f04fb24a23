package main

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the environment-level defaults of the CLI. Flags override
// these per invocation.
type Config struct {
	Lang   string `env:"VALICOMB_LANG" envDefault:"en"`
	Strict bool   `env:"VALICOMB_STRICT" envDefault:"false"`
}

var (
	errParsingConfig = errors.New("failed to parse environment config")

	defaultEnvLoaded sync.Once
)

// loadConfig reads the environment into a Config, loading a .env file first
// when one exists.
func loadConfig() (Config, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(errParsingConfig, err)
	}
	return cfg, nil
}
