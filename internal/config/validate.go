package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Reader.ChunkSize <= 0 {
		return errors.New("reader.chunk_size must be positive")
	}
	if c.Reader.MaxElementBytes < int64(c.Reader.ChunkSize) {
		return errors.New("reader.max_element_bytes must be at least reader.chunk_size")
	}
	if c.Fetch.Concurrency <= 0 {
		return errors.New("fetch.concurrency must be positive")
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// SlogLevel parses Level.
func (l Logging) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}

	return level, nil
}
