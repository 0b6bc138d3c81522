package ripple

import (
	"fmt"
	"time"

	"github.com/Tap30/ripple-analytics/adapters"
)

// Re-export adapter types for convenience
type (
	Event          = adapters.Event
	Params         = adapters.Params
	Platform       = adapters.Platform
	HTTPAdapter    = adapters.HTTPAdapter
	HTTPResponse   = adapters.HTTPResponse
	StorageAdapter = adapters.StorageAdapter
	LoggerAdapter  = adapters.LoggerAdapter
	LogLevel       = adapters.LogLevel
)

// HTTPError reports a batch the collector answered with a non-2xx status.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("ripple: HTTP request failed with status %d", e.Status)
}

// ClientConfig configures the ripple backend client.
// The env tags are read by LoadConfig with the RIPPLE_ prefix.
type ClientConfig struct {
	APIKey        string        `env:"API_KEY"`
	Endpoint      string        `env:"ENDPOINT"`
	APIKeyHeader  string        `env:"API_KEY_HEADER" envDefault:"X-API-Key"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"5s"`
	MaxBatchSize  int           `env:"MAX_BATCH_SIZE" envDefault:"10"`
	// MaxRetries of zero means the default. Set DisableRetries to send
	// each batch exactly once; a negative MaxRetries does the same.
	MaxRetries           int           `env:"MAX_RETRIES" envDefault:"3"`
	DisableRetries       bool          `env:"DISABLE_RETRIES"`
	RetryInitialInterval time.Duration `env:"RETRY_INITIAL_INTERVAL" envDefault:"1s"`
	RetryMaxInterval     time.Duration `env:"RETRY_MAX_INTERVAL" envDefault:"30s"`
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	LogLevel             LogLevel      `env:"LOG_LEVEL" envDefault:"WARN"`

	// StoragePath selects persistence when StorageAdapter is nil:
	// empty disables it, a *.json path uses a file, anything else a badger directory.
	StoragePath string `env:"STORAGE_PATH"`

	HTTPAdapter    HTTPAdapter
	StorageAdapter StorageAdapter
	LoggerAdapter  LoggerAdapter
}

type DispatcherConfig struct {
	Endpoint             string
	FlushInterval        time.Duration
	MaxBatchSize         int
	MaxRetries           int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}
