package network

import (
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/metrics"
	"boscoin.io/votebook/lib/network/httputils"
)

// VerboseLogs prints the stack of the recovered panic.
var VerboseLogs bool

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rc := recover(); rc != nil {
					err, ok := rc.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rc)
					}
					httputils.WriteJSONError(w, err)

					logger.Error("recovered from panic", "error", err, "uri", r.RequestURI)
					if VerboseLogs {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitReached(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSONError(w, errors.TooManyRequests)
}

func rateLimitError(w http.ResponseWriter, r *http.Request, err error) {
	httputils.WriteJSONError(w, err)
}

func newRateLimitMiddleware(rate limiter.Rate) *stdlib.Middleware {
	if rate.Limit < 1 {
		return nil
	}

	return stdlib.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		stdlib.WithLimitReachedHandler(rateLimitReached),
		stdlib.WithErrorHandler(rateLimitError),
	)
}

// RateLimitMiddleware limits the requests by the remote ip address. The ip
// address in `rule.ByIPAddress` gets its own rate, the others share
// `rule.Default`; rate with zero `Limit` is unlimited.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	defaultMiddleware := newRateLimitMiddleware(rule.Default)

	byIP := map[string]*stdlib.Middleware{}
	for ip, rate := range rule.ByIPAddress {
		byIP[ip] = newRateLimitMiddleware(rate)
	}

	logger.Debug("rate limit middleware", "default", rule.Default, "by-ip", len(byIP))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			m := defaultMiddleware
			if found, ok := byIP[ip]; ok {
				m = found
			}

			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			m.Handler(next).ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware observes every request of the router; the endpoint label
// is the route template, not the requested path.
func MetricsMiddleware(m *metrics.APIMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			writer := &HTTP2ResponseLog15Writer{w: w}
			next.ServeHTTP(writer, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}

			status := writer.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.Observe(begin, endpoint, r.Method, status)
		})
	}
}
