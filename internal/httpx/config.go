// path: internal/httpx/config.go
package httpx

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server's environment-derived configuration.
type Config struct {
	Addr    string `env:"VCHESS_ADDR" envDefault:":8080"`
	DataDir string `env:"VCHESS_DATA_DIR" envDefault:"data"`
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
