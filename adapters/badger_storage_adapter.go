package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Key layout: q:<seq>:<ulid>, seq is zero padded so key order is save order.
const queuePrefix = "q:"

// BadgerStorageAdapter persists undelivered events in an embedded BadgerDB.
type BadgerStorageAdapter struct {
	db *badger.DB
}

// Ensure BadgerStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*BadgerStorageAdapter)(nil)

// NewBadgerStorageAdapter opens (or creates) a BadgerDB at dir.
// An empty dir keeps everything in memory.
func NewBadgerStorageAdapter(dir string) (*BadgerStorageAdapter, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger storage: %w", err)
	}
	return &BadgerStorageAdapter{db: db}, nil
}

func encodeQueueKey(seq int, event Event) []byte {
	return []byte(fmt.Sprintf("%s%010d:%s", queuePrefix, seq, event.ID))
}

// Save atomically replaces the persisted queue with events.
func (b *BadgerStorageAdapter) Save(events []Event) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := deletePrefix(txn, []byte(queuePrefix)); err != nil {
			return err
		}

		for i, event := range events {
			data, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to marshal event %s: %w", event.Name, err)
			}
			if err := txn.Set(encodeQueueKey(i, event), data); err != nil {
				return fmt.Errorf("failed to write event %s: %w", event.ID, err)
			}
		}
		return nil
	})
}

// Load returns the persisted events in save order.
func (b *BadgerStorageAdapter) Load() ([]Event, error) {
	events := []Event{}

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queuePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var event Event
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", it.Item().Key(), err)
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Clear removes all persisted events.
func (b *BadgerStorageAdapter) Clear() error {
	return b.db.Update(func(txn *badger.Txn) error {
		return deletePrefix(txn, []byte(queuePrefix))
	})
}

// Close releases the underlying database.
func (b *BadgerStorageAdapter) Close() error {
	return b.db.Close()
}

func deletePrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
