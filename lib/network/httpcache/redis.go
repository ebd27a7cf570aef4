package httpcache

import (
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

// RedisKeyPrefix separates the cached pages from the other keys of the
// shared redis.
const RedisKeyPrefix = "votebook-page-"

// RedisMaxExpire bounds the pages cached without expiration; the retired
// generations are not removed by `Client`.
var RedisMaxExpire = time.Hour

type RedisRingOptions redis.RingOptions

// RedisCacheAdapter stores the pages in the redis ring, encoded by msgpack.
type RedisCacheAdapter struct {
	ring  *redis.Ring
	codec *redisCache.Codec
}

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ringOptions := redis.RingOptions(*opt)
	ring := redis.NewRing(&ringOptions)

	return &RedisCacheAdapter{
		ring: ring,
		codec: &redisCache.Codec{
			Redis: ring,
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (a *RedisCacheAdapter) Ping() error {
	return a.ring.Ping().Err()
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	var resp Response
	if err := a.codec.Get(RedisKeyPrefix+key, &resp); err != nil {
		return nil, false
	}

	return &resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	ttl := RedisMaxExpire
	if !expiration.IsZero() {
		if ttl = time.Until(expiration); ttl <= 0 {
			return
		}
	}

	a.codec.Set(&redisCache.Item{
		Key:        RedisKeyPrefix + key,
		Object:     resp,
		Expiration: ttl,
	})
}

func (a *RedisCacheAdapter) Remove(key string) {
	a.codec.Delete(RedisKeyPrefix + key)
}
