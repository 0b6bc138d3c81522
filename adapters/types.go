package adapters

import "github.com/oklog/ulid/v2"

// Params holds the key/value parameters attached to an event.
// A nil Params means the event carries no parameters.
type Params = map[string]any

// Event represents a logged analytics event as it travels to the collector.
type Event struct {
	ID            ulid.ULID      `json:"id"`
	Name          string         `json:"name"`
	Params        Params         `json:"params"`
	Metadata      map[string]any `json:"metadata"`
	IssuedAt      int64          `json:"issuedAt"`
	AppInstanceID string         `json:"appInstanceId"`
	Platform      *Platform      `json:"platform"`
}

// Platform represents server platform information.
type Platform struct {
	Type string `json:"type"`
}
