package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NetHTTPAdapter is the standard HTTP adapter implementation using net/http package.
type NetHTTPAdapter struct {
	client *http.Client
}

// Ensure NetHTTPAdapter implements HTTPAdapter interface
var _ HTTPAdapter = (*NetHTTPAdapter)(nil)

// NewNetHTTPAdapter creates a NetHTTPAdapter backed by a pooled client.
// A zero timeout leaves request lifetime to the caller's context.
func NewNetHTTPAdapter(timeout time.Duration) *NetHTTPAdapter {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	client.Transport = otelhttp.NewTransport(client.Transport)
	return NewNetHTTPAdapterWithClient(client)
}

// NewNetHTTPAdapterWithClient creates a NetHTTPAdapter using the given client as is.
func NewNetHTTPAdapterWithClient(client *http.Client) *NetHTTPAdapter {
	return &NetHTTPAdapter{client: client}
}

// Send posts events as {"events": [...]} to endpoint with the given headers.
func (h *NetHTTPAdapter) Send(ctx context.Context, endpoint string, events []Event, headers map[string]string) (*HTTPResponse, error) {
	payload := map[string]any{
		"events": events,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeEvents, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// drain so the pooled connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return &HTTPResponse{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}
