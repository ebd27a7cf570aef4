package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ Adapter = (*MemCacheAdapter)(nil)

func TestMemCacheAdapter(t *testing.T) {
	a := NewMemCacheAdapter(2)
	now := time.Now()

	key := "key"
	resp := &Response{
		Value:      []byte("hello"),
		Expiration: now,
	}

	a.Set(key, resp, now)

	cachedResp, ok := a.Get(key)
	require.Equal(t, true, ok)
	require.Equal(t, resp, cachedResp)

	a.Remove(key)
	_, ok = a.Get(key)
	require.False(t, ok)

	// least recently used one is evicted
	a.Set("a", resp, now)
	a.Set("b", resp, now)
	a.Set("c", resp, now)
	require.Equal(t, 2, a.Len())
	_, ok = a.Get("a")
	require.False(t, ok)
}
