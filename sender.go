package ripple

import "fmt"

// Sender logs named analytics events.
//
// name is expected to be 1 to 40 characters long. Implementations forward
// it as is; whether an out-of-range name is rejected, dropped or accepted is
// up to the backend they talk to. params may be nil.
type Sender interface {
	LogEvent(name string, params Params)
}

// Analytics is the backend client a Sender hands events to.
type Analytics interface {
	LogEvent(name string, params Params)
}

// AppContext is the application handle an EventSender binds to. It owns the
// backend analytics client and creates it on first request.
type AppContext interface {
	Analytics() (Analytics, error)
}

// EventSender forwards events to the analytics backend of an AppContext.
type EventSender struct {
	analytics Analytics
}

var _ Sender = (*EventSender)(nil)

// NewEventSender binds a sender to the backend client of app. It fails only
// when the backend cannot be initialized.
func NewEventSender(app AppContext) (*EventSender, error) {
	analytics, err := app.Analytics()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain analytics client: %w", err)
	}
	return &EventSender{analytics: analytics}, nil
}

// LogEvent passes name and params to the backend unchanged.
func (s *EventSender) LogEvent(name string, params Params) {
	s.analytics.LogEvent(name, params)
}

// NoopSender discards every event.
type NoopSender struct{}

func (NoopSender) LogEvent(name string, params Params) {}

// MultiSender forwards each event to all of its senders in order.
type MultiSender []Sender

func (m MultiSender) LogEvent(name string, params Params) {
	for _, s := range m {
		s.LogEvent(name, params)
	}
}

// LoggerSender writes events to a LoggerAdapter at INFO level.
type LoggerSender struct {
	Logger LoggerAdapter
}

func (s *LoggerSender) LogEvent(name string, params Params) {
	if len(params) == 0 {
		s.Logger.Info("analytics event %s", name)
		return
	}
	s.Logger.Info("analytics event %s %v", name, params)
}
