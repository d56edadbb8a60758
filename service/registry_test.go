package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_TryAcquireIsAllOrNothing(t *testing.T) {
	registry := NewRegistry()

	assert.True(t, registry.TryAcquire("alice"))
	assert.False(t, registry.TryAcquire("alice", "bob"))
	assert.False(t, registry.Contains("bob"), "a failed acquire must not hold bob")

	assert.True(t, registry.TryAcquire("bob", "carol"))
	assert.True(t, registry.Contains("carol"))
}

func TestRegistry_ReleaseIsIdempotent(t *testing.T) {
	registry := NewRegistry()

	registry.TryAcquire("alice")
	registry.Release("alice")
	registry.Release("alice")
	assert.False(t, registry.Contains("alice"))
	assert.True(t, registry.TryAcquire("alice"))
}

func TestRegistry_ConcurrentAcquiresAdmitExactlyOne(t *testing.T) {
	registry := NewRegistry()

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for n := 0; n < attempts; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if registry.TryAcquire("alice") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
}
