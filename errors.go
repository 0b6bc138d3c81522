package ripple

import "errors"

var (
	// ErrMissingAPIKey is returned by NewClient when no API key is configured.
	ErrMissingAPIKey = errors.New("ripple: API key must be provided in config")

	// ErrMissingEndpoint is returned by NewClient when no endpoint is configured.
	ErrMissingEndpoint = errors.New("ripple: endpoint must be provided in config")

	// ErrNotInitialized is returned when tracking before Init.
	ErrNotInitialized = errors.New("ripple: client not initialized, call Init() before tracking events")

	// ErrDisposed is returned when using a disposed client.
	ErrDisposed = errors.New("ripple: client is disposed")

	// ErrInvalidEventName is returned for names outside the allowed length.
	ErrInvalidEventName = errors.New("ripple: invalid event name")

	// ErrInvalidParam is returned for parameters the backend cannot carry.
	ErrInvalidParam = errors.New("ripple: invalid event parameter")

	// ErrInvalidMetadataKey is returned by SetMetadata for empty or oversized keys.
	ErrInvalidMetadataKey = errors.New("ripple: invalid metadata key")

	// ErrUnknownProvider is returned by NewSender for an unrecognized provider name.
	ErrUnknownProvider = errors.New("ripple: unknown analytics provider")

	// ErrApplicationClosed is returned by Application.Analytics after Close.
	ErrApplicationClosed = errors.New("ripple: application is closed")
)
