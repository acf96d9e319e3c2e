package ports

import "context"

// ObjectStore is the key/object backend the session repository persists
// to. Keys are slash-separated paths; values are opaque JSON documents.
// Implementations provide last-write-wins overwrite semantics and no
// locking beyond that; the repository assumes at most one writer per key
// at a time.
type ObjectStore interface {
	// Put writes an object, overwriting any existing value.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads an object. A missing key is not an error: found is
	// false and data is nil.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	// Exists reports whether the key holds an object.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes an object. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// List returns the keys under the given prefix, sorted
	// lexicographically.
	List(ctx context.Context, prefix string) ([]string, error)
}
