package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvIntakeIdleTimeout   = "BRAINCHECK_INTAKE_IDLE_TIMEOUT"
	EnvIntakeSweepInterval = "BRAINCHECK_INTAKE_SWEEP_INTERVAL"
	EnvIntakeWorkers       = "BRAINCHECK_INTAKE_WORKERS"
)

// IntakeConfig holds session flow parameters.
type IntakeConfig struct {
	IdleTimeout   string `toml:"idle_timeout"`
	SweepInterval string `toml:"sweep_interval"`
	Workers       int    `toml:"workers"`
}

// IdleTimeoutDuration returns IdleTimeout as a time.Duration.
func (c *IntakeConfig) IdleTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	return d
}

// SweepIntervalDuration returns SweepInterval as a time.Duration.
func (c *IntakeConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *IntakeConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *IntakeConfig) Merge(overlay *IntakeConfig) {
	if overlay.IdleTimeout != "" {
		c.IdleTimeout = overlay.IdleTimeout
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
}

func (c *IntakeConfig) loadDefaults() {
	if c.IdleTimeout == "" {
		c.IdleTimeout = "10m"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "1m"
	}
	if c.Workers == 0 {
		c.Workers = 16
	}
}

func (c *IntakeConfig) loadEnv() {
	if v := os.Getenv(EnvIntakeIdleTimeout); v != "" {
		c.IdleTimeout = v
	}
	if v := os.Getenv(EnvIntakeSweepInterval); v != "" {
		c.SweepInterval = v
	}
	if v := os.Getenv(EnvIntakeWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
}

func (c *IntakeConfig) validate() error {
	for name, value := range map[string]string{
		"idle_timeout":   c.IdleTimeout,
		"sweep_interval": c.SweepInterval,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive: %d", c.Workers)
	}
	return nil
}
