package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/arloliu/mzml/internal/config"
	"github.com/arloliu/mzml/reader"
)

type globalFlags struct {
	config   string
	logLevel string
	mmap     bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.logLevel != "" {
			cfg.Logging.Level = strings.ToLower(c.flags.logLevel)
		}
		if c.flags.mmap {
			cfg.Reader.MMap = true
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})

	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}

	level, _ := cfg.Logging.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// openStore opens path per the configuration, logging to the command's stderr.
func (c *commandContext) openStore(cmd *cobra.Command, path string) (*reader.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts := cfg.StoreOptions(c.logger(cmd.ErrOrStderr()))
	if cfg.Reader.MMap {
		return reader.OpenMapped(path, opts...)
	}

	return reader.Open(path, opts...)
}
