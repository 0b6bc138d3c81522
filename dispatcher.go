package ripple

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Tap30/ripple-analytics/adapters"
	"github.com/cenkalti/backoff/v4"
)

// Dispatcher batches queued events and delivers them through an HTTPAdapter.
// Batches that still fail after retries are put back and persisted.
type Dispatcher struct {
	config         DispatcherConfig
	queue          *Queue
	httpAdapter    HTTPAdapter
	storageAdapter StorageAdapter
	loggerAdapter  LoggerAdapter
	headers        map[string]string

	ctx    context.Context
	cancel context.CancelFunc

	ticker       *time.Ticker
	stopChan     chan struct{}
	stopOnce     sync.Once
	flushMu      sync.Mutex
	wg           sync.WaitGroup
	timerStarted bool
	timerMu      sync.Mutex
}

func NewDispatcher(config DispatcherConfig, httpAdapter HTTPAdapter, storageAdapter StorageAdapter, headers map[string]string) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		config:         config,
		queue:          NewQueue(),
		httpAdapter:    httpAdapter,
		storageAdapter: storageAdapter,
		loggerAdapter:  adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn),
		headers:        headers,
		ctx:            ctx,
		cancel:         cancel,
		stopChan:       make(chan struct{}),
	}
}

// SetLoggerAdapter sets a custom logger adapter
func (d *Dispatcher) SetLoggerAdapter(logger LoggerAdapter) {
	d.loggerAdapter = logger
}

// Start restores persisted events. The flush timer starts with the first new event.
func (d *Dispatcher) Start() error {
	events, err := d.storageAdapter.Load()
	if err != nil {
		return err
	}
	d.queue.LoadFromSlice(events)
	if len(events) > 0 {
		d.loggerAdapter.Info("Restored %d persisted events", len(events))
	}
	return nil
}

func (d *Dispatcher) Enqueue(event Event) {
	n := d.queue.Enqueue(event)

	d.startTimerIfNeeded()

	if n >= d.config.MaxBatchSize {
		d.wg.Go(d.Flush)
	}
}

func (d *Dispatcher) startTimerIfNeeded() {
	d.timerMu.Lock()
	defer d.timerMu.Unlock()

	if d.timerStarted {
		return
	}
	d.ticker = time.NewTicker(d.config.FlushInterval)
	d.timerStarted = true
	d.wg.Go(func() {
		for {
			select {
			case <-d.ticker.C:
				d.Flush()
			case <-d.stopChan:
				return
			}
		}
	})
}

// Flush sends every queued event now, in batches of MaxBatchSize.
func (d *Dispatcher) Flush() {
	d.flushMu.Lock()
	defer d.flushMu.Unlock()

	allEvents := d.queue.Drain()
	if len(allEvents) == 0 {
		return
	}

	d.loggerAdapter.Debug("Starting flush of %d events", len(allEvents))

	for i := 0; i < len(allEvents); i += d.config.MaxBatchSize {
		end := min(i+d.config.MaxBatchSize, len(allEvents))
		batch := allEvents[i:end]

		d.loggerAdapter.Debug("Sending batch of %d events", len(batch))
		err := d.sendWithRetry(batch)

		var httpErr *HTTPError
		switch {
		case err == nil:
			d.loggerAdapter.Debug("Successfully sent batch of %d events", len(batch))
			d.clearStorage()
		case errors.As(err, &httpErr) && httpErr.Status >= 400 && httpErr.Status < 500:
			d.loggerAdapter.Warn("Client error %d, dropping %d events", httpErr.Status, len(batch))
			d.clearStorage()
		case errors.As(err, &httpErr) && httpErr.Status < 400:
			d.loggerAdapter.Error("Unexpected status %d, dropping %d events", httpErr.Status, len(batch))
		case errors.Is(err, adapters.ErrEncodeEvents):
			d.loggerAdapter.Error("Dropping %d events that cannot be encoded: %v", len(batch), err)
			d.clearStorage()
		default:
			// put back this batch and everything not yet attempted
			d.loggerAdapter.Error("Failed to send batch after %d retries: %v", d.config.MaxRetries, err)
			d.queue.Requeue(allEvents[i:])
			d.persist()
			return
		}
	}
}

func (d *Dispatcher) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.config.RetryInitialInterval
	b.MaxInterval = d.config.RetryMaxInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(d.config.MaxRetries)), d.ctx)
}

// sendWithRetry retries network errors and 5xx responses; any other
// non-2xx status is returned as a permanent *HTTPError.
func (d *Dispatcher) sendWithRetry(events []Event) error {
	attempt := 0
	operation := func() error {
		attempt++
		d.loggerAdapter.Debug("Sending HTTP request, attempt %d/%d", attempt, d.config.MaxRetries+1)

		resp, err := d.httpAdapter.Send(d.ctx, d.config.Endpoint, events, d.headers)
		if errors.Is(err, adapters.ErrEncodeEvents) {
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}

		switch {
		case resp.Status >= 200 && resp.Status < 300:
			return nil
		case resp.Status >= 500:
			return &HTTPError{Status: resp.Status}
		default:
			return backoff.Permanent(&HTTPError{Status: resp.Status})
		}
	}

	notify := func(err error, wait time.Duration) {
		d.loggerAdapter.Warn("Send failed (%v), retrying in %v", err, wait)
	}

	return backoff.RetryNotify(operation, d.newBackOff(), notify)
}

func (d *Dispatcher) clearStorage() {
	if err := d.storageAdapter.Clear(); err != nil {
		d.loggerAdapter.Warn("Failed to clear storage: %v", err)
	}
}

func (d *Dispatcher) persist() {
	events := d.queue.ToSlice()
	if len(events) == 0 {
		return
	}
	if err := d.storageAdapter.Save(events); err != nil {
		d.loggerAdapter.Error("Failed to persist %d events: %v", len(events), err)
	}
}

func (d *Dispatcher) stopTimer() {
	d.stopOnce.Do(func() {
		d.timerMu.Lock()
		if d.ticker != nil {
			d.ticker.Stop()
		}
		d.timerMu.Unlock()
		close(d.stopChan)
	})
	d.wg.Wait()
}

// Stop flushes the queue one last time and persists whatever could not be sent.
func (d *Dispatcher) Stop() error {
	d.stopTimer()
	d.Flush()
	d.cancel()

	return d.saveRemaining()
}

// StopWithoutFlush aborts in-flight retries and persists queued events
// without sending them.
func (d *Dispatcher) StopWithoutFlush() error {
	d.cancel()
	d.stopTimer()

	// wait for an in-flight flush to requeue its batch
	d.flushMu.Lock()
	defer d.flushMu.Unlock()

	return d.saveRemaining()
}

func (d *Dispatcher) saveRemaining() error {
	events := d.queue.ToSlice()
	if len(events) > 0 {
		return d.storageAdapter.Save(events)
	}
	return nil
}
