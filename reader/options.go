package reader

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/extract"
	"github.com/arloliu/mzml/internal/options"
)

type config struct {
	chunkSize int
	maxBytes  int64
	logger    *slog.Logger
}

func defaultConfig() *config {
	return &config{
		chunkSize: extract.DefaultChunkSize,
		maxBytes:  extract.DefaultMaxElementBytes,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// Option configures a Store.
type Option = options.Option[*config]

// WithChunkSize sets the size of each positioned read used to find an
// element's closing tag. The default is 8 KiB.
func WithChunkSize(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: chunk size must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.chunkSize = n

		return nil
	})
}

// WithMaxElementBytes caps how many bytes are read for one element before
// giving up with errs.ErrBoundaryNotFound. The default is 64 MiB.
func WithMaxElementBytes(n int64) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max element bytes must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.maxBytes = n

		return nil
	})
}

// WithLogger sets the logger. A nil logger keeps the default, which discards.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
