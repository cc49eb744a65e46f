package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads an optional .env file into the process environment.
// A missing file is not an error; variables already present in the
// environment win over file values.
func LoadDotEnv() {
	_ = godotenv.Load()
}
