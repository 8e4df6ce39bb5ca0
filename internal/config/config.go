// Package config exposes the environment-driven settings verscout reads.
// Everything has a safe default; nothing here is required.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvAPITimeout is the environment variable to configure API request timeout
	EnvAPITimeout = "VERSCOUT_API_TIMEOUT"

	// EnvKubectlPath is the environment variable to override the kubectl binary used
	// for cluster-backed version lookups
	EnvKubectlPath = "VERSCOUT_KUBECTL"

	// DefaultAPITimeout is the default timeout for API requests (30 seconds)
	DefaultAPITimeout = 30 * time.Second

	// DefaultKubectlPath is the kubectl binary resolved via PATH
	DefaultKubectlPath = "kubectl"
)

// GetAPITimeout returns the configured API timeout from VERSCOUT_API_TIMEOUT.
// If not set or invalid, returns DefaultAPITimeout (30 seconds).
// Accepts duration strings like "30s", "1m", "2m30s".
func GetAPITimeout() time.Duration {
	envValue := os.Getenv(EnvAPITimeout)
	if envValue == "" {
		return DefaultAPITimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvAPITimeout, envValue, DefaultAPITimeout)
		return DefaultAPITimeout
	}

	// Validate reasonable range (1 second to 10 minutes)
	if duration < 1*time.Second {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum 1s\n",
			EnvAPITimeout, duration)
		return 1 * time.Second
	}
	if duration > 10*time.Minute {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum 10m\n",
			EnvAPITimeout, duration)
		return 10 * time.Minute
	}

	return duration
}

// GetKubectlPath returns the kubectl binary to invoke for cluster lookups,
// from VERSCOUT_KUBECTL. Defaults to "kubectl" resolved via PATH.
func GetKubectlPath() string {
	if p := os.Getenv(EnvKubectlPath); p != "" {
		return p
	}
	return DefaultKubectlPath
}
