package config

import "github.com/arloliu/mzml/extract"

const (
	defaultConcurrency = 4
	defaultLogLevel    = "warn"
	defaultLogFormat   = "text"
)

// Default returns a Config populated with the library defaults.
func Default() Config {
	return Config{
		Reader: Reader{
			ChunkSize:       extract.DefaultChunkSize,
			MaxElementBytes: extract.DefaultMaxElementBytes,
		},
		Fetch: Fetch{
			Concurrency: defaultConcurrency,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
