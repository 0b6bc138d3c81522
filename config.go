package ripple

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable LoadConfig reads.
const EnvPrefix = "RIPPLE_"

// LoadConfig reads a ClientConfig from RIPPLE_* environment variables.
func LoadConfig() (ClientConfig, error) {
	var cfg ClientConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return ClientConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
