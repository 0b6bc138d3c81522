package ripple

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"sync"
	"time"

	"github.com/Tap30/ripple-analytics/adapters"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-uuid"
)

var serverPlatform = &Platform{Type: "server"}

// Client is the ripple backend: it validates events, stamps them and hands
// them to a Dispatcher for batched delivery.
type Client struct {
	config          ClientConfig
	metadataManager *MetadataManager
	dispatcher      *Dispatcher
	httpAdapter     HTTPAdapter
	storageAdapter  StorageAdapter
	loggerAdapter   LoggerAdapter
	ids             *idSource
	appInstanceID   string

	// closers are resources the client opened itself and must release.
	closers []io.Closer

	initialized bool
	disposed    bool
	mu          sync.RWMutex
}

// Ensure Client implements Analytics interface
var _ Analytics = (*Client)(nil)

// NewClient validates config, fills in defaults and builds any adapter the
// config leaves nil.
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	applyDefaults(&config)

	instanceID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate app instance id: %w", err)
	}

	client := &Client{
		config:          config,
		metadataManager: NewMetadataManager(),
		httpAdapter:     config.HTTPAdapter,
		storageAdapter:  config.StorageAdapter,
		loggerAdapter:   config.LoggerAdapter,
		ids:             newIDSource(),
		appInstanceID:   instanceID,
	}

	if client.loggerAdapter == nil {
		client.loggerAdapter = adapters.NewPrintLoggerAdapter(config.LogLevel)
	}
	if client.httpAdapter == nil {
		client.httpAdapter = adapters.NewNetHTTPAdapter(config.HTTPTimeout)
	}
	if client.storageAdapter == nil {
		storage, err := openStorage(config.StoragePath)
		if err != nil {
			return nil, err
		}
		client.storageAdapter = storage
		if c, ok := storage.(io.Closer); ok {
			client.closers = append(client.closers, c)
		}
	}

	return client, nil
}

func applyDefaults(config *ClientConfig) {
	if config.APIKeyHeader == "" {
		config.APIKeyHeader = "X-API-Key"
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = 10
	}
	if config.DisableRetries || config.MaxRetries < 0 {
		config.MaxRetries = 0
	} else if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryInitialInterval <= 0 {
		config.RetryInitialInterval = time.Second
	}
	if config.RetryMaxInterval <= 0 {
		config.RetryMaxInterval = 30 * time.Second
	}
	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = 10 * time.Second
	}
	if config.LogLevel == "" {
		config.LogLevel = adapters.LogLevelWarn
	}
}

func openStorage(path string) (StorageAdapter, error) {
	switch {
	case path == "":
		return adapters.NewNoOpStorageAdapter(), nil
	case filepath.Ext(path) == ".json":
		return adapters.NewFileStorageAdapter(path), nil
	default:
		return adapters.NewBadgerStorageAdapter(path)
	}
}

// SetHTTPAdapter sets a custom HTTP adapter.
// Must be called before Init().
func (c *Client) SetHTTPAdapter(adapter HTTPAdapter) {
	c.httpAdapter = adapter
}

// SetStorageAdapter sets a custom storage adapter.
// Must be called before Init().
func (c *Client) SetStorageAdapter(adapter StorageAdapter) {
	c.storageAdapter = adapter
}

// Init restores persisted events and readies the dispatcher. Calling it
// again is a no-op.
func (c *Client) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return ErrDisposed
	}
	if c.initialized {
		return nil
	}

	headers := map[string]string{
		c.config.APIKeyHeader: c.config.APIKey,
	}

	dispatcherConfig := DispatcherConfig{
		Endpoint:             c.config.Endpoint,
		FlushInterval:        c.config.FlushInterval,
		MaxBatchSize:         c.config.MaxBatchSize,
		MaxRetries:           c.config.MaxRetries,
		RetryInitialInterval: c.config.RetryInitialInterval,
		RetryMaxInterval:     c.config.RetryMaxInterval,
	}

	c.dispatcher = NewDispatcher(dispatcherConfig, c.httpAdapter, c.storageAdapter, headers)
	c.dispatcher.SetLoggerAdapter(c.loggerAdapter)
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to load persisted events: %w", err)
	}

	c.initialized = true
	c.loggerAdapter.Info("Client initialized successfully")
	return nil
}

// SetMetadata attaches key/value to every event tracked from now on.
func (c *Client) SetMetadata(key string, value any) error {
	return c.metadataManager.Set(key, value)
}

func (c *Client) GetMetadata() map[string]any {
	return c.metadataManager.GetAll()
}

// AppInstanceID identifies this client instance on every event it sends.
func (c *Client) AppInstanceID() string {
	return c.appInstanceID
}

// Track validates and enqueues an event. params is copied, so the caller
// may reuse the map afterwards.
func (c *Client) Track(name string, params Params) error {
	if err := ValidateEventName(name); err != nil {
		return err
	}
	if err := ValidateParams(params); err != nil {
		return err
	}

	// held across Enqueue so Dispose cannot stop the dispatcher underneath us
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.disposed {
		return ErrDisposed
	}
	if !c.initialized {
		return ErrNotInitialized
	}

	now := time.Now()
	event := Event{
		ID:            c.ids.New(now),
		Name:          name,
		Params:        maps.Clone(params),
		Metadata:      c.metadataManager.GetAll(),
		IssuedAt:      now.UnixMilli(),
		AppInstanceID: c.appInstanceID,
		Platform:      serverPlatform,
	}

	c.loggerAdapter.Debug("Tracking event: %s", name)
	c.dispatcher.Enqueue(event)
	return nil
}

// LogEvent implements Analytics. Events the backend rejects are logged
// and dropped; nothing is reported to the caller.
func (c *Client) LogEvent(name string, params Params) {
	if err := c.Track(name, params); err != nil {
		c.loggerAdapter.Warn("Dropping event %q: %v", name, err)
	}
}

// Flush sends queued events now. The client lock is not held while sending.
func (c *Client) Flush() {
	c.mu.RLock()
	dispatcher := c.dispatcher
	initialized := c.initialized
	c.mu.RUnlock()

	if !initialized {
		c.loggerAdapter.Warn("Flush called before initialization")
		return
	}

	c.loggerAdapter.Debug("Flushing events")
	dispatcher.Flush()
}

// Dispose flushes pending events, persists what could not be delivered and
// releases storage the client opened. The client cannot be reused.
func (c *Client) Dispose() error {
	return c.dispose(true)
}

// DisposeWithoutFlush stops the client and persists events to storage without flushing to server
func (c *Client) DisposeWithoutFlush() error {
	return c.dispose(false)
}

func (c *Client) dispose(flush bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil
	}
	c.disposed = true

	var result *multierror.Error
	if c.initialized {
		if flush {
			c.loggerAdapter.Info("Disposing client")
			result = multierror.Append(result, c.dispatcher.Stop())
		} else {
			c.loggerAdapter.Info("Disposing client without flush")
			result = multierror.Append(result, c.dispatcher.StopWithoutFlush())
		}
		c.initialized = false
	}

	for _, closer := range c.closers {
		result = multierror.Append(result, closer.Close())
	}
	return result.ErrorOrNil()
}
