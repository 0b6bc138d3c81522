package adapters

// StorageAdapter is an interface for persisting events that could not be delivered.
// Implement this interface to use custom storage backends.
type StorageAdapter interface {
	// Save replaces the persisted events with the given ones, preserving order.
	Save(events []Event) error

	// Load retrieves persisted events in the order they were saved.
	// Returns an empty slice when nothing is persisted.
	Load() ([]Event, error)

	// Clear removes all persisted events from storage.
	Clear() error
}
