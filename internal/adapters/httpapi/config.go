package httpapi

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings, populated from the environment with
// flag overrides applied by the CLI.
type Config struct {
	Addr          string `env:"KINETIC_ADDR" envDefault:":8080"`
	ScriptPath    string `env:"KINETIC_SCRIPT"`
	ReducedMotion bool   `env:"KINETIC_REDUCED_MOTION"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
