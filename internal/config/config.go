package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopolicy/domain/policy"
	"gopolicy/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Parameters policy.Parameters
	Output     OutputConfig
	Sweep      SweepConfig
}

// OutputConfig holds file output settings
type OutputConfig struct {
	Dir string
}

// SweepConfig holds sweep execution settings
type SweepConfig struct {
	GridWorkers int
}

// envVarFor maps a parameter key to its override environment variable, e.g.
// baseline_deaths -> POLICY_BASELINE_DEATHS.
func envVarFor(key policy.ParameterKey) string {
	return "POLICY_" + strings.ToUpper(string(key))
}

// Load reads configuration from environment variables and validates it.
// Baseline parameters start from the documented defaults; each can be
// overridden via its POLICY_* variable.
func Load() (*Config, error) {
	params, err := loadParameters()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model parameters")
	}

	workers, err := getEnvIntOrDefault("GRID_WORKERS", 4)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sweep configuration")
	}
	if workers < 1 {
		return nil, errors.ConfigInvalid("GRID_WORKERS must be at least 1")
	}

	return &Config{
		Parameters: params,
		Output: OutputConfig{
			Dir: getEnvOrDefault("OUTPUT_DIR", "."),
		},
		Sweep: SweepConfig{
			GridWorkers: workers,
		},
	}, nil
}

func loadParameters() (policy.Parameters, error) {
	params := policy.DefaultParameters()

	for _, key := range policy.ParameterKeys() {
		raw := os.Getenv(envVarFor(key))
		if raw == "" {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, errors.ConfigInvalid(
				fmt.Sprintf("%s must be numeric, got %q", envVarFor(key), raw))
		}

		params, err = params.WithValue(key, value)
		if err != nil {
			return params, err
		}
	}

	return params, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, raw))
	}
	return value, nil
}
