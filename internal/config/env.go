// internal/config/env.go
package config

import (
	"fmt"
	"math"

	"github.com/caarlos0/env/v11"
)

// Env holds defaults taken from DETPROD_* variables. Command-line flags
// override every field.
type Env struct {
	TemperatureK float64  `env:"DETPROD_TEMPERATURE_K" envDefault:"273"`
	WeightsFile  string   `env:"DETPROD_WEIGHTS"`
	CatalogFiles []string `env:"DETPROD_CATALOG" envSeparator:","`
	DBPath       string   `env:"DETPROD_DB"`
	LogLevel     string   `env:"DETPROD_LOG_LEVEL" envDefault:"warn"`
	LogFormat    string   `env:"DETPROD_LOG_FORMAT" envDefault:"text"`
	Threads      int      `env:"DETPROD_THREADS" envDefault:"0"`
}

// Load parses the process environment.
func Load() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, e.Validate()
}

// LoadFrom parses a fixed variable map instead of the process environment.
func LoadFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, e.Validate()
}

// Validate checks value ranges the type system cannot express.
func (e Env) Validate() error {
	if !(e.TemperatureK > 0) || math.IsInf(e.TemperatureK, 0) {
		return fmt.Errorf("DETPROD_TEMPERATURE_K must be finite and > 0, got %v", e.TemperatureK)
	}
	if e.Threads < 0 {
		return fmt.Errorf("DETPROD_THREADS must be ≥ 0, got %d", e.Threads)
	}
	switch e.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("DETPROD_LOG_FORMAT must be text or json, got %q", e.LogFormat)
	}
	return nil
}
