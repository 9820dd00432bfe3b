package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/arloliu/mzml/reader"
)

//go:embed sample_config.toml
var sampleConfig string

// ProjectConfigName is looked up in the working directory when no path is given.
const ProjectConfigName = "mzscan.toml"

// Reader contains store tuning.
type Reader struct {
	ChunkSize       int   `toml:"chunk_size"`
	MaxElementBytes int64 `toml:"max_element_bytes"`
	MMap            bool  `toml:"mmap"`
}

// Fetch contains parallel fetch settings.
type Fetch struct {
	Concurrency int `toml:"concurrency"`
}

// Logging contains logger settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the mzscan configuration file.
type Config struct {
	Reader  Reader  `toml:"reader"`
	Fetch   Fetch   `toml:"fetch"`
	Logging Logging `toml:"logging"`
}

// Load parses and validates the configuration at path on top of Default.
//
// An empty path falls back to ProjectConfigName in the working directory and
// to plain defaults when that file does not exist either. An explicit path
// must exist. The returned bool reports whether a file was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ProjectConfigName
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, false, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, false, fmt.Errorf("open config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}

	return &cfg, err == nil, nil
}

// StoreOptions translates the reader section into store options.
func (c *Config) StoreOptions(logger *slog.Logger) []reader.Option {
	return []reader.Option{
		reader.WithChunkSize(c.Reader.ChunkSize),
		reader.WithMaxElementBytes(c.Reader.MaxElementBytes),
		reader.WithLogger(logger),
	}
}

// CreateSample writes a sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}

	return nil
}
