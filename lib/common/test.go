package common

import (
	"time"
)

// NewTestConfig returns the `Config` used by unittests; cache is disabled
// and the api is not rate limited.
func NewTestConfig() Config {
	p := NewConfig([]byte("votebook-unittest"))
	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitUnlimited)
	p.HTTPCacheExpire = 100 * time.Millisecond

	return p
}
