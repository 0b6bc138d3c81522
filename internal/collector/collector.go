// Package collector is a small ingestion endpoint for ripple events, used
// for local development and in tests.
package collector

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/Tap30/ripple-analytics/adapters"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TriggerErrorParam makes the collector answer 500 when an event carries it set to true.
const TriggerErrorParam = "trigger_error"

const maxBodyBytes = 5 << 20

type eventsPayload struct {
	Events []adapters.Event `json:"events"`
}

// Collector receives event batches over HTTP and keeps them in memory.
type Collector struct {
	// APIKeyHeader and APIKey enable authentication when APIKey is set.
	APIKeyHeader string
	APIKey       string

	Logger *log.Logger

	mu      sync.Mutex
	batches [][]adapters.Event
}

func New(logger *log.Logger) *Collector {
	return &Collector{
		APIKeyHeader: "X-API-Key",
		Logger:       logger,
	}
}

// Handler wraps the collector with HTTP tracing.
func (c *Collector) Handler() http.Handler {
	return otelhttp.NewHandler(c, "collector")
}

func (c *Collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+c.APIKeyHeader)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		c.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if c.APIKey != "" && r.Header.Get(c.APIKeyHeader) != c.APIKey {
		c.logf("rejected batch: invalid API key")
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid API key"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}

	var payload eventsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logf("rejected batch: %v", err)
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	for _, event := range payload.Events {
		if trigger, ok := event.Params[TriggerErrorParam].(bool); ok && trigger {
			c.logf("simulating server error for event %q", event.Name)
			c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "simulated server error"})
			return
		}
	}

	c.mu.Lock()
	c.batches = append(c.batches, payload.Events)
	c.mu.Unlock()

	for _, event := range payload.Events {
		c.logf("received %s %s params=%v", event.ID, event.Name, event.Params)
	}

	c.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"received": len(payload.Events),
	})
}

// Batches returns the accepted batches in arrival order.
func (c *Collector) Batches() [][]adapters.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]adapters.Event(nil), c.batches...)
}

// Events returns every accepted event in arrival order.
func (c *Collector) Events() []adapters.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var events []adapters.Event
	for _, b := range c.batches {
		events = append(events, b...)
	}
	return events
}

func (c *Collector) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

func (c *Collector) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.logf("failed to write response: %v", err)
	}
}
