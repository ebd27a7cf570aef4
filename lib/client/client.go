package client

import (
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sethgrid/pester"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/contract/payload"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlNodeInfo       = "/"
	UrlAdmin          = "/admin"
	UrlProposals      = "/proposals"
	UrlProposal       = "/proposals/{id}"
	UrlProposalVoters = "/proposals/{id}/voters"
	UrlInvocations    = "/invocations"
	UrlInvocation     = "/invocations/{id}"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

// DefaultRetrySetting retries the failed requests with exponential backoff.
// Resubmitted invocations are rejected by the node, so posting is retried
// too.
var DefaultRetrySetting = &common.RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

func NewClient(url string) (*Client, error) {
	return NewClientWithRetry(url, nil)
}

// NewClientWithRetry returns the client retrying by `retry`; nil `retry`
// does not retry.
func NewClientWithRetry(url string, retry *common.RetrySetting) (*Client, error) {
	httpClient, err := common.NewPersistentHTTP2Client(10*time.Second, 0, true, retry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to make http2 client")
	}

	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}, nil
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return errors.Wrapf(err, "failed to read problem; status=%d", resp.StatusCode)
		}
		return Error{Problem: p}
	}

	if err = decoder.Decode(response); err != nil {
		return errors.Wrap(err, "failed to read response")
	}
	return
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func (c *Client) load(url string, response interface{}) error {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.Get(url, headers)
	if err != nil {
		return errors.Wrapf(err, "failed to request; url=%s", url)
	}

	return c.toResponse(resp, response)
}

func (c *Client) LoadNodeInfo() (info NodeInfo, err error) {
	err = c.load(UrlNodeInfo, &info)
	return
}

func (c *Client) LoadAdmin() (admin Admin, err error) {
	err = c.load(UrlAdmin, &admin)
	return
}

func (c *Client) LoadProposal(id uint64) (proposal Proposal, err error) {
	url := strings.Replace(UrlProposal, "{id}", strconv.FormatUint(id, 10), -1)
	err = c.load(url, &proposal)
	return
}

func (c *Client) LoadProposals(queries ...Q) (page ProposalsPage, err error) {
	url := UrlProposals + Queries(queries).toQueryString()
	err = c.load(url, &page)
	return
}

func (c *Client) LoadProposalVoters(id uint64, queries ...Q) (page VotersPage, err error) {
	url := strings.Replace(UrlProposalVoters, "{id}", strconv.FormatUint(id, 10), -1)
	url += Queries(queries).toQueryString()
	err = c.load(url, &page)
	return
}

func (c *Client) LoadInvocation(hash string) (invocation InvocationHistory, err error) {
	url := strings.Replace(UrlInvocation, "{id}", hash, -1)
	err = c.load(url, &invocation)
	return
}

// SubmitInvocation posts the signed invocation and returns the committed
// result.
func (c *Client) SubmitInvocation(invocation payload.Invocation) (result InvocationResult, err error) {
	var body []byte
	if body, err = json.Marshal(invocation); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.Post(UrlInvocations, body, headers); err != nil {
		err = errors.Wrap(err, "failed to submit invocation")
		return
	}

	err = c.toResponse(resp, &result)
	return
}
