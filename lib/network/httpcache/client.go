package httpcache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votebook/lib/common"
)

// Client caches the GET responses by url. The cache key carries the
// generation, so `Invalidate` retires every cached page at once; the pages of
// the old generation are left to expire in the adapter.
type Client struct {
	generation uint64
	adapter    Adapter
	ttl        time.Duration
	logger     logging.Logger
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{logger: common.NopLogger()}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

// WithExpire sets the lifetime of cached pages; 0 keeps them until they are
// invalidated or evicted.
func WithExpire(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		if ttl < 0 {
			return errors.New("negative cache expiration")
		}
		c.ttl = ttl
		return nil
	}
}

func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.serve(next, w, r)
	})
}

func (c *Client) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.serve(handlerFunc, w, r)
	}
}

func (c *Client) Invalidate() {
	g := atomic.AddUint64(&c.generation, 1)
	c.logger.Debug("cache invalidated", "generation", g)
}

// key is taken before the page is rendered; a page rendered across
// `Invalidate` is stored under the retired generation.
func (c *Client) key(u *url.URL) string {
	return strconv.FormatUint(atomic.LoadUint64(&c.generation), 10) + "-" + u.String()
}

func (c *Client) serve(next http.Handler, w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		next.ServeHTTP(w, r)
		return
	}

	normalizeQuery(r.URL)
	key := c.key(r.URL)

	if cached, found := c.adapter.Get(key); found {
		if cached.Expiration.IsZero() || cached.Expiration.After(time.Now()) {
			c.logger.Debug("cache hit", "url", r.URL.String())
			writeResponse(w, cached.StatusCode, cached.Header, cached.Value)
			return
		}
		c.adapter.Remove(key)
	}

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)
	result := rec.Result()

	// errors are rendered from the current state every time
	if result.StatusCode < 400 {
		var expiration time.Time
		if c.ttl > 0 {
			expiration = time.Now().Add(c.ttl)
		}

		c.adapter.Set(key, &Response{
			Value:      rec.Body.Bytes(),
			StatusCode: result.StatusCode,
			Header:     result.Header,
			Expiration: expiration,
		}, expiration)
		c.logger.Debug("page cached", "url", r.URL.String(), "code", result.StatusCode, "expiration", expiration)
	}

	writeResponse(w, result.StatusCode, result.Header, rec.Body.Bytes())
}

func writeResponse(w http.ResponseWriter, code int, header http.Header, body []byte) {
	for k, v := range header {
		w.Header()[k] = v
	}
	w.WriteHeader(code)
	w.Write(body)
}

// normalizeQuery sorts the query values, so the same query in the different
// order hits the same page.
func normalizeQuery(u *url.URL) {
	query := u.Query()
	for _, values := range query {
		sort.Strings(values)
	}
	u.RawQuery = query.Encode()
}
