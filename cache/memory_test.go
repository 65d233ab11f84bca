package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[string]()

	_, ok, err := store.Get(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = store.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Set(ctx, "a", "3"))

	value, ok, _ := store.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "3", value)

	ids, _ := store.IDs(ctx)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Remove(ctx, "a"))
	require.NoError(t, store.Remove(ctx, "a"))
	require.NoError(t, store.Remove(ctx, "never"))
	_, ok, _ = store.Get(ctx, "a")
	assert.False(t, ok)
	ids, _ = store.IDs(ctx)
	assert.Equal(t, []string{"b"}, ids)
}

func TestMemory_IDsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[int]()
	_ = store.Set(ctx, "x", 1)
	ids, _ := store.IDs(ctx)
	ids[0] = "mutated"
	actual, _ := store.IDs(ctx)
	assert.Equal(t, []string{"x"}, actual)
}

func TestMemory_Wait(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[int]()

	var wg sync.WaitGroup
	wg.Add(1)
	var got int
	go func() {
		defer wg.Done()
		got, _ = store.Wait(ctx, "id")
	}()
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.Set(ctx, "id", 7))
	wg.Wait()
	assert.Equal(t, 7, got)

	value, err := store.Wait(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Millisecond)
	defer cancel()
	_, err = store.Wait(timeoutCtx, "other")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%10))
			_ = store.Set(ctx, id, i)
			_, _, _ = store.Get(ctx, id)
		}(i)
	}
	wg.Wait()
	ids, _ := store.IDs(ctx)
	assert.Len(t, ids, 10)
}
