package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvClassifierEndpoint  = "BRAINCHECK_CLASSIFIER_ENDPOINT"
	EnvClassifierTimeout   = "BRAINCHECK_CLASSIFIER_TIMEOUT"
	EnvClassifierInputSize = "BRAINCHECK_CLASSIFIER_INPUT_SIZE"
)

// ClassifierConfig holds inference endpoint parameters and the input
// preprocessing contract the model expects.
type ClassifierConfig struct {
	Endpoint  string    `toml:"endpoint"`
	Timeout   string    `toml:"timeout"`
	InputSize int       `toml:"input_size"`
	Mean      []float32 `toml:"mean"`
	Scale     []float32 `toml:"scale"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ClassifierConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *ClassifierConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.InputSize != 0 {
		c.InputSize = overlay.InputSize
	}
	if len(overlay.Mean) != 0 {
		c.Mean = overlay.Mean
	}
	if len(overlay.Scale) != 0 {
		c.Scale = overlay.Scale
	}
}

func (c *ClassifierConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.InputSize == 0 {
		c.InputSize = 224
	}
	if len(c.Mean) == 0 {
		c.Mean = []float32{0, 0, 0}
	}
	if len(c.Scale) == 0 {
		c.Scale = []float32{1, 1, 1}
	}
}

func (c *ClassifierConfig) loadEnv() {
	if v := os.Getenv(EnvClassifierEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvClassifierTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvClassifierInputSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.InputSize = n
		}
	}
}

func (c *ClassifierConfig) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if c.InputSize < 1 {
		return fmt.Errorf("input_size must be positive: %d", c.InputSize)
	}
	if len(c.Mean) != 3 {
		return fmt.Errorf("mean must have 3 channel values, got %d", len(c.Mean))
	}
	if len(c.Scale) != 3 {
		return fmt.Errorf("scale must have 3 channel values, got %d", len(c.Scale))
	}
	return nil
}
