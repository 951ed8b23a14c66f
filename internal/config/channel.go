package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"braincheck/pkg/formatting"
)

const (
	EnvChannelBasePath        = "BRAINCHECK_CHANNEL_BASE_PATH"
	EnvChannelReadBufferSize  = "BRAINCHECK_CHANNEL_READ_BUFFER_SIZE"
	EnvChannelWriteBufferSize = "BRAINCHECK_CHANNEL_WRITE_BUFFER_SIZE"
	EnvChannelSendTimeout     = "BRAINCHECK_CHANNEL_SEND_TIMEOUT"
	EnvChannelMaxPhotoSize    = "BRAINCHECK_CHANNEL_MAX_PHOTO_SIZE"
)

// ChannelConfig holds messaging channel parameters.
type ChannelConfig struct {
	BasePath        string `toml:"base_path"`
	ReadBufferSize  int    `toml:"read_buffer_size"`
	WriteBufferSize int    `toml:"write_buffer_size"`
	SendTimeout     string `toml:"send_timeout"`
	MaxPhotoSize    string `toml:"max_photo_size"`
}

// SendTimeoutDuration returns SendTimeout as a time.Duration.
func (c *ChannelConfig) SendTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SendTimeout)
	return d
}

// MaxPhotoSizeBytes returns MaxPhotoSize as a byte count.
func (c *ChannelConfig) MaxPhotoSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxPhotoSize)
	return n
}

// Finalize applies defaults, environment overrides, and validation.
func (c *ChannelConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ChannelConfig) Merge(overlay *ChannelConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.ReadBufferSize != 0 {
		c.ReadBufferSize = overlay.ReadBufferSize
	}
	if overlay.WriteBufferSize != 0 {
		c.WriteBufferSize = overlay.WriteBufferSize
	}
	if overlay.SendTimeout != "" {
		c.SendTimeout = overlay.SendTimeout
	}
	if overlay.MaxPhotoSize != "" {
		c.MaxPhotoSize = overlay.MaxPhotoSize
	}
}

func (c *ChannelConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/channel"
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = 1024
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = 1024
	}
	if c.SendTimeout == "" {
		c.SendTimeout = "15s"
	}
	if c.MaxPhotoSize == "" {
		c.MaxPhotoSize = "20MB"
	}
}

func (c *ChannelConfig) loadEnv() {
	if v := os.Getenv(EnvChannelBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvChannelReadBufferSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ReadBufferSize = n
		}
	}
	if v := os.Getenv(EnvChannelWriteBufferSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.WriteBufferSize = n
		}
	}
	if v := os.Getenv(EnvChannelSendTimeout); v != "" {
		c.SendTimeout = v
	}
	if v := os.Getenv(EnvChannelMaxPhotoSize); v != "" {
		c.MaxPhotoSize = v
	}
}

func (c *ChannelConfig) validate() error {
	if _, err := time.ParseDuration(c.SendTimeout); err != nil {
		return fmt.Errorf("invalid send_timeout %q: %w", c.SendTimeout, err)
	}
	n, err := formatting.ParseBytes(c.MaxPhotoSize)
	if err != nil {
		return fmt.Errorf("invalid max_photo_size %q: %w", c.MaxPhotoSize, err)
	}
	if n <= 0 {
		return fmt.Errorf("max_photo_size must be positive: %q", c.MaxPhotoSize)
	}
	return nil
}
