package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxMessageBytes   int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	JokeURL           string        `mapstructure:"joke_url" yaml:"joke_url"`
	JokeTimeout       time.Duration `mapstructure:"joke_timeout" yaml:"joke_timeout"`
	SendBuffer        int           `mapstructure:"send_buffer" yaml:"send_buffer"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		MaxMessageBytes:   64 << 10,
		LogLevel:          "info",
		JokeURL:           "https://icanhazdadjoke.com/",
		JokeTimeout:       5 * time.Second,
		SendBuffer:        32,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.JokeURL != "" {
		c.JokeURL = other.JokeURL
	}
	if other.JokeTimeout != 0 {
		c.JokeTimeout = other.JokeTimeout
	}
	if other.SendBuffer != 0 {
		c.SendBuffer = other.SendBuffer
	}
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "addr is empty")
	}
	if c.JokeURL == "" {
		problems = append(problems, "joke_url is empty")
	}
	if c.JokeTimeout < 0 {
		problems = append(problems, "joke_timeout is negative")
	}
	if c.MaxMessageBytes <= 0 {
		problems = append(problems, "max_message_bytes must be positive")
	}
	if c.SendBuffer <= 0 {
		problems = append(problems, "send_buffer must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
