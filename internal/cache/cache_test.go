package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetSet(t *testing.T) {
	c := New(true)
	defer c.Close()

	_, _, ok := c.Get("graph:1")
	assert.False(t, ok)

	etag := c.Set("graph:1", []byte(`{"nodes":[]}`), time.Minute)
	data, got, ok := c.Get("graph:1")
	assert.True(t, ok)
	assert.Equal(t, etag, got)
	assert.Equal(t, `{"nodes":[]}`, string(data))

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats["hits"])
	assert.Equal(t, uint64(1), stats["misses"])
}

func TestCache_Expiry(t *testing.T) {
	c := New(true)
	defer c.Close()

	c.Set("k", []byte("v"), -time.Second)
	_, _, ok := c.Get("k")
	assert.False(t, ok)

	c.evict()
	assert.Equal(t, 0, c.Stats()["total_keys"])
}

func TestCache_Disabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.Equal(t, ComputeETag([]byte("v")), etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
	c.Close()
	c.Close()
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}

func TestCache_Clear(t *testing.T) {
	c := New(true)
	defer c.Close()

	c.Set("filters", []byte("{}"), time.Hour)
	c.Set("graph:y=2020", []byte("{}"), time.Hour)
	c.Clear()

	_, _, ok := c.Get("filters")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats()["total_keys"])
}
