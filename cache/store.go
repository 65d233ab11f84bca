package cache

import "context"

// Store is a keyed result registry preserving insertion order of live ids.
// Implementations may be in-memory or persistent.
type Store[T any] interface {
	// Set inserts or overwrites value for id; the id keeps its original position on overwrite.
	Set(ctx context.Context, id string, value T) error
	// Get returns the value for id; ok is false when id is empty or absent.
	Get(ctx context.Context, id string) (T, bool, error)
	// Remove deletes id; removing an absent id is a no-op.
	Remove(ctx context.Context, id string) error
	// IDs returns live ids in insertion order.
	IDs(ctx context.Context) ([]string, error)
}

// Waiter is implemented by stores that can block until an id is set.
type Waiter[T any] interface {
	Wait(ctx context.Context, id string) (T, error)
}
