package httpcache

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// MemCacheAdapter keeps the last `size` pages in memory. The expiration is
// checked by `Client`.
type MemCacheAdapter struct {
	pages *lru.Cache
}

func NewMemCacheAdapter(size int) *MemCacheAdapter {
	pages, err := lru.New(size)
	if err != nil {
		panic(err)
	}

	return &MemCacheAdapter{pages: pages}
}

func (a *MemCacheAdapter) Get(key string) (*Response, bool) {
	v, found := a.pages.Get(key)
	if !found {
		return nil, false
	}

	resp, ok := v.(*Response)
	return resp, ok
}

func (a *MemCacheAdapter) Set(key string, resp *Response, _ time.Time) {
	a.pages.Add(key, resp)
}

func (a *MemCacheAdapter) Remove(key string) {
	a.pages.Remove(key)
}

func (a *MemCacheAdapter) Len() int {
	return a.pages.Len()
}
