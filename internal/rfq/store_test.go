package rfq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetCreatesEmptyCart(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	cart, err := s.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.Count())

	cart.Add(item("a"))

	again, err := s.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Count())
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	a, _ := s.Get(ctx, "a")
	a.Add(item("x"))

	b, _ := s.Get(ctx, "b")
	assert.Equal(t, 0, b.Count())
}

func TestMemoryStore_ExpiresIdleSessions(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	cart, _ := s.Get(ctx, "s1")
	cart.Add(item("a"))
	_, _ = s.Get(ctx, "s2")

	now = now.Add(30 * time.Second)
	_, _ = s.Get(ctx, "s2") // keeps s2 alive

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	now = now.Add(2 * time.Minute)
	fresh, _ := s.Get(ctx, "s2")
	assert.Equal(t, 0, fresh.Count())
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	cart, _ := s.Get(ctx, "s1")
	cart.Add(item("a"))
	require.NoError(t, s.Delete(ctx, "s1"))

	again, _ := s.Get(ctx, "s1")
	assert.Equal(t, 0, again.Count())
}

func TestMemoryStore_RunStopsOnCancel(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
