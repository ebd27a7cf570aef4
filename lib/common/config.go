package common

import (
	"time"

	"github.com/ulule/limiter"
)

const (
	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
	HTTPCacheNopAdapterName    = ""

	HTTPCachePoolSize = 10000
	HTTPCacheExpire   = 3 * time.Second
)

var (
	// RateLimitAPI is the default rate of the public API.
	RateLimitAPI = limiter.Rate{
		Period: 1 * time.Second,
		Limit:  100,
	}

	// RateLimitUnlimited turns off the rate limit; `Limit` 0 is treated as
	// unlimited.
	RateLimitUnlimited = limiter.Rate{
		Period: 1 * time.Second,
		Limit:  0,
	}
)

// Config has the node-wide settings which are not part of the voting
// rules; the voting rules are configured by `voting.Config`.
type Config struct {
	NetworkID []byte

	RateLimitRuleAPI RateLimitRule

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheExpire     time.Duration
	HTTPCacheRedisAddrs map[string]string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)

	p.HTTPCachePoolSize = HTTPCachePoolSize
	p.HTTPCacheExpire = HTTPCacheExpire

	return p
}

type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}
