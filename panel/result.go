package panel

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/volinsight/cache"
	"github.com/viant/volinsight/client"
	"github.com/viant/volinsight/payload"
)

// Stores creates the result cache for a client side store name
type Stores func(name string) (cache.Store[*payload.Result], error)

// MemoryStores creates in-memory caches
func MemoryStores(string) (cache.Store[*payload.Result], error) {
	return cache.NewMemory[*payload.Result](), nil
}

// BindResults creates the cache for store and registers its setter on handler
func BindResults(handler *client.Handler, stores Stores, store, setter string, decoder payload.Decoder) (cache.Store[*payload.Result], error) {
	if stores == nil {
		stores = MemoryStores
	}
	results, err := stores(store)
	if err != nil {
		return nil, fmt.Errorf("failed to create %v store: %w", store, err)
	}
	cache.Bind[*payload.Result](handler, store, setter, results, decoder)
	return results, nil
}

// Fetch reads id from store. When absent and store can wait, it waits up to wait for the push to land.
func Fetch[T any](ctx context.Context, store cache.Store[T], id string, wait time.Duration) (T, error) {
	value, ok, err := store.Get(ctx, id)
	if err != nil || ok {
		return value, err
	}
	if waiter, canWait := store.(cache.Waiter[T]); canWait && wait > 0 && id != "" {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		if value, err = waiter.Wait(waitCtx, id); err == nil {
			return value, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %v", ErrMissingResult, id)
}

// Consume fetches id, hands it to fn and removes the entry whatever the outcome.
func Consume[T any](ctx context.Context, store cache.Store[T], id string, wait time.Duration, fn func(value T) error) error {
	defer func() { _ = store.Remove(ctx, id) }()
	value, err := Fetch(ctx, store, id, wait)
	if err != nil {
		return err
	}
	return fn(value)
}
