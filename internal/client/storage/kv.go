package storage

import "context"

//go:generate moq -out kvstorage_mock.go . KVStorage

// Persistence keys owned by the offline core.
// Имена зафиксированы, на них завязан формат экспорта.
const (
	KeyPendingActions = "offline_pending_actions"
	KeyLastSync       = "offline_last_sync"
	KeyDataVersion    = "offline_data_version"
	KeyCache          = "offline_cache"
)

// OfflineKeys returns every key the offline core writes.
func OfflineKeys() []string {
	return []string{KeyPendingActions, KeyLastSync, KeyDataVersion, KeyCache}
}

// KVStorage is the durable key/value persistence provider used by the offline core.
// Values are opaque strings; callers own the encoding.
type KVStorage interface {
	// Get returns the value for key. ok is false when the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// ListKeys returns all stored keys in lexical order
	ListKeys(ctx context.Context) ([]string, error)

	// MultiGet returns values for the given keys. Missing keys are omitted from the result.
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)

	// MultiSet stores all pairs in a single transaction
	MultiSet(ctx context.Context, pairs map[string]string) error

	// MultiRemove deletes all keys in a single transaction
	MultiRemove(ctx context.Context, keys []string) error
}

// Replacer is implemented by stores that can swap their whole contents
// in one transaction.
type Replacer interface {
	// ReplaceAll removes every key and stores pairs atomically
	ReplaceAll(ctx context.Context, pairs map[string]string) error
}
