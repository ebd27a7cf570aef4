package common

import (
	"bytes"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

// HTTPDoer has the same interface as `http.Client.Do`.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type BackoffStrategy = pester.BackoffStrategy

// RetrySetting configures `pester`; nil `RetrySetting` means no retry.
type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

// HTTP2Client is the http client over the http2 transport. The node uses
// self-signed certificates in the test networks, so the certificate is not
// verified.
type HTTP2Client struct {
	doer      HTTPDoer
	client    http.Client
	transport *http.Transport
}

// NewHTTP2Client makes the client; `idleTimeout` is used only when the
// connection is kept alive.
func NewHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool) (*HTTP2Client, error) {
	transport := &http.Transport{
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
		DisableKeepAlives: !keepAlive,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: time.Second,
			DualStack: true,
		}).DialContext,
	}
	if keepAlive {
		transport.IdleConnTimeout = idleTimeout
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, err
	}

	c := &HTTP2Client{
		client: http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		transport: transport,
	}
	c.doer = &c.client

	return c, nil
}

// NewPersistentHTTP2Client keeps the connections alive and retries the failed
// requests by `retry`.
func NewPersistentHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool, retry *RetrySetting) (*HTTP2Client, error) {
	c, err := NewHTTP2Client(timeout, idleTimeout, keepAlive)
	if err != nil {
		return nil, err
	}

	if retry != nil {
		ec := pester.NewExtendedClient(&c.client)
		ec.MaxRetries = retry.MaxRetries
		ec.Concurrency = retry.Concurrency
		ec.Backoff = retry.Backoff

		c.doer = ec
	}

	return c, nil
}

func (c *HTTP2Client) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTP2Client) request(method, url string, body io.Reader, headers http.Header) (*http.Response, error) {
	request, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if headers != nil {
		request.Header = headers
	}

	return c.Do(request)
}

func (c *HTTP2Client) Get(url string, headers http.Header) (*http.Response, error) {
	return c.request("GET", url, nil, headers)
}

func (c *HTTP2Client) Post(url string, b []byte, headers http.Header) (*http.Response, error) {
	return c.request("POST", url, bytes.NewReader(b), headers)
}

func (c *HTTP2Client) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}
