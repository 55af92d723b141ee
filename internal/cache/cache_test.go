package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(maxSize int, ttl time.Duration) (*Bounded, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(maxSize, ttl).WithClock(clock.now), clock
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	values := map[string]any{
		"str":   "value",
		"int":   42,
		"slice": []int{1, 2, 3},
	}
	for k, v := range values {
		c.Set(k, v)
		got, ok := c.Get(k)
		require.True(t, ok, "key %s", k)
		assert.Equal(t, v, got)
	}

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestEvictsOldestInsertedNotOldestAccessed(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so an access-order cache would keep it
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", 4)

	assert.False(t, c.Has("a"), "oldest inserted key should be evicted")
	assert.True(t, c.Has("b"))
	assert.True(t, c.Has("c"))
	assert.True(t, c.Has("d"))
	assert.Equal(t, 3, c.Len())
}

func TestEvictionSequence(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	for i := 0; i < 3; i++ {
		assert.False(t, c.Has(fmt.Sprintf("k%d", i)))
	}
	assert.True(t, c.Has("k3"))
	assert.True(t, c.Has("k4"))
}

func TestResetMovesKeyToNewest(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10) // re-insert, still two keys
	assert.Equal(t, 2, c.Len())

	c.Set("c", 3)
	assert.False(t, c.Has("b"))
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestExpiresAfterTTL(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)

	c.Set("k", "v")

	clock.advance(time.Minute)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry exactly at TTL is still fresh")

	clock.advance(time.Nanosecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "stale entry is evicted on read")
}

func TestHasMatchesGet(t *testing.T) {
	c, clock := newTestCache(10, time.Second)

	c.Set("k", "v")
	assert.True(t, c.Has("k"))

	clock.advance(2 * time.Second)
	assert.False(t, c.Has("k"))
}

func TestDeleteAndClear(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestShallowStorage(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	s := []int{1, 2, 3}
	c.Set("s", s)
	s[0] = 99

	got, ok := c.Get("s")
	require.True(t, ok)
	assert.Equal(t, 99, got.([]int)[0])
}

func TestGatewayTuning(t *testing.T) {
	g := NewGateway()
	assert.Equal(t, GatewayMaxSize, g.maxSize)
	assert.Equal(t, GatewayTTL, g.ttl)
	assert.Greater(t, GatewayMaxSize, DefaultMaxSize)
	assert.Greater(t, GatewayTTL, DefaultTTL)
}
