package httpcache

import (
	"fmt"

	"boscoin.io/votebook/lib/common"
)

func NewAdapter(cfg common.Config) (Adapter, error) {
	switch cfg.HTTPCacheAdapter {
	case common.HTTPCacheMemoryAdapterName:
		return NewMemCacheAdapter(cfg.HTTPCachePoolSize), nil
	case common.HTTPCacheRedisAdapterName:
		if len(cfg.HTTPCacheRedisAddrs) < 1 {
			return nil, fmt.Errorf("redis cache adapter needs addresses")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{
			Addrs: cfg.HTTPCacheRedisAddrs,
		}), nil
	default:
		return nil, fmt.Errorf("adapter not found: %q", cfg.HTTPCacheAdapter)
	}
}

// NewHandler returns `NopClient` when no adapter is configured.
func NewHandler(cfg common.Config, opts ...ClientOption) (Handler, error) {
	if cfg.HTTPCacheAdapter == common.HTTPCacheNopAdapterName {
		return NewNopClient(), nil
	}

	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}

	opts = append(
		[]ClientOption{WithAdapter(adapter), WithExpire(cfg.HTTPCacheExpire)},
		opts...,
	)

	return NewClient(opts...)
}
