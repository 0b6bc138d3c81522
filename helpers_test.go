package ripple

import (
	"context"
	"fmt"
	"sync"

	"github.com/Tap30/ripple-analytics/adapters"
)

type mockHTTPAdapter struct {
	mu         sync.Mutex
	calls      int
	batches    [][]Event
	err        error
	statusCode int
}

func (m *mockHTTPAdapter) Send(ctx context.Context, endpoint string, events []Event, headers map[string]string) (*HTTPResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.batches = append(m.batches, append([]Event(nil), events...))
	if m.err != nil {
		return nil, m.err
	}
	status := m.statusCode
	if status == 0 {
		status = 200
	}
	return &HTTPResponse{Status: status, OK: status >= 200 && status < 300}, nil
}

func (m *mockHTTPAdapter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockHTTPAdapter) sent() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []Event
	for _, b := range m.batches {
		all = append(all, b...)
	}
	return all
}

type mockStorageAdapter struct {
	mu      sync.Mutex
	saved   []Event
	loaded  []Event
	cleared int
	err     error
}

func (m *mockStorageAdapter) Save(events []Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = events
	return nil
}

func (m *mockStorageAdapter) Load() ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.loaded, nil
}

func (m *mockStorageAdapter) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
	return nil
}

func (m *mockStorageAdapter) savedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

func (m *mockStorageAdapter) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

var _ adapters.LoggerAdapter = (*recordingLogger)(nil)

func (r *recordingLogger) record(level, message string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, level+" "+fmt.Sprintf(message, args...))
}

func (r *recordingLogger) Debug(message string, args ...any) { r.record("DEBUG", message, args) }
func (r *recordingLogger) Info(message string, args ...any)  { r.record("INFO", message, args) }
func (r *recordingLogger) Warn(message string, args ...any)  { r.record("WARN", message, args) }
func (r *recordingLogger) Error(message string, args ...any) { r.record("ERROR", message, args) }

func (r *recordingLogger) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}
