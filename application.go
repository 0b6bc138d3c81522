package ripple

import (
	"fmt"
	"sync"
)

// Application is an AppContext backed by a ripple Client. The client is
// created and initialized the first time Analytics is called and then
// shared by every sender bound to the application.
type Application struct {
	config ClientConfig

	once   sync.Once
	client *Client
	err    error
}

var _ AppContext = (*Application)(nil)

func NewApplication(config ClientConfig) *Application {
	return &Application{config: config}
}

// Analytics returns the application's client, creating it on first use.
// A construction failure is remembered and returned on every call.
func (a *Application) Analytics() (Analytics, error) {
	client, err := a.Client()
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Client is Analytics with the concrete type, for callers that need Flush
// or metadata.
func (a *Application) Client() (*Client, error) {
	a.once.Do(func() {
		client, err := NewClient(a.config)
		if err != nil {
			a.err = fmt.Errorf("failed to create analytics client: %w", err)
			return
		}
		if err := client.Init(); err != nil {
			a.err = fmt.Errorf("failed to initialize analytics client: %w", err)
			return
		}
		a.client = client
	})
	return a.client, a.err
}

// Close disposes the client if one was created. Afterwards Analytics
// returns the existing (disposed) client or ErrApplicationClosed.
func (a *Application) Close() error {
	a.once.Do(func() {
		a.err = ErrApplicationClosed
	})
	if a.client == nil {
		return nil
	}
	return a.client.Dispose()
}
