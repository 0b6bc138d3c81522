package adapters

import (
	"context"
	"errors"
)

// ErrEncodeEvents is returned by Send when a batch cannot be encoded. Retrying
// such a batch can never succeed.
var ErrEncodeEvents = errors.New("failed to encode events")

// HTTPResponse represents the response from an HTTP request.
type HTTPResponse struct {
	OK     bool
	Status int
}

// HTTPAdapter is an interface for HTTP communication.
// Implement this interface to use custom HTTP clients.
type HTTPAdapter interface {
	// Send events to the specified endpoint.
	//
	// Parameters:
	//   - ctx: Cancels the request when done
	//   - endpoint: The API endpoint URL
	//   - events: Batch of events to send
	//   - headers: Optional custom headers to merge with defaults
	//
	// Returns HTTP response or error.
	Send(ctx context.Context, endpoint string, events []Event, headers map[string]string) (*HTTPResponse, error)
}
