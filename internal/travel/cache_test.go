package travel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2, 0)
	a, b, d := Key{"a", "b"}, Key{"b", "c"}, Key{"c", "d"}

	c.Put(a, time.Minute)
	c.Put(b, 2*time.Minute)
	_, ok := c.Get(a) // a becomes most recent
	assert.True(t, ok)
	c.Put(d, 3*time.Minute)

	_, ok = c.Get(b)
	assert.False(t, ok, "b was least recently used")
	v, ok := c.Get(a)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, v)
	assert.Equal(t, 2, c.Len())
}

func TestCache_TTL(t *testing.T) {
	c := NewCache(10, 50*time.Millisecond)

	k := Key{"a", "b"}
	c.Put(k, time.Minute)
	v, ok := c.Get(k)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, v)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(k)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCache_NoTTLKeepsEntries(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Minute} {
		c := NewCache(10, ttl)
		c.Put(Key{"a", "b"}, time.Minute)
		time.Sleep(5 * time.Millisecond)
		v, ok := c.Get(Key{"a", "b"})
		assert.True(t, ok, "ttl %s", ttl)
		assert.Equal(t, time.Minute, v)
	}
}

func TestCache_PutReplacesValue(t *testing.T) {
	c := NewCache(2, 0)
	c.Put(Key{"a", "b"}, time.Minute)
	c.Put(Key{"a", "b"}, 2*time.Minute)

	v, ok := c.Get(Key{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, 2*time.Minute, v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_DefaultSize(t *testing.T) {
	c := NewCache(0, 0)
	for i := 0; i < DefaultCacheSize+10; i++ {
		c.Put(Key{Origin: string(rune(i)), Destination: "z"}, time.Minute)
	}
	assert.Equal(t, DefaultCacheSize, c.Len())
}

func TestCache_OrderedPair(t *testing.T) {
	c := NewCache(10, 0)
	c.Put(Key{"a", "b"}, time.Minute)
	_, ok := c.Get(Key{"b", "a"})
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(10, 0)
	c.Put(Key{"a", "b"}, time.Minute)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(Key{"a", "b"})
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(8, 0)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := Key{Origin: string(rune('a' + i%4)), Destination: "z"}
			c.Put(k, time.Duration(i)*time.Minute)
			c.Get(k)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 8)
}
