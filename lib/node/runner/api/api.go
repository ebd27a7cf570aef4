package api

import (
	"fmt"

	"boscoin.io/votebook/lib/common/observer"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/contract/value"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/storage"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetNodeInfoPattern              = "/"
	GetAdminHandlerPattern          = "/admin"
	GetProposalsHandlerPattern      = "/proposals"
	GetProposalHandlerPattern       = "/proposals/{id}"
	GetProposalVotersHandlerPattern = "/proposals/{id}/voters"
	GetInvocationHandlerPattern     = "/invocations/{id}"
	PostInvocationsHandlerPattern   = "/invocations"
)

// InvokeFunc applies the invocation; the returned result is written as the
// response.
type InvokeFunc func(payload.Invocation) (interface{}, error)

// QueryFunc runs the read-only method of the voting contract against the
// committed state.
type QueryFunc func(payload.ExecCode) (*value.Value, error)

type NetworkHandlerAPI struct {
	storage   *storage.LevelDBBackend
	urlPrefix string
	version   string
	cache     httpcache.Handler

	Invoke      InvokeFunc
	Query       QueryFunc
	GetNodeInfo func() map[string]interface{}
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, urlPrefix string, cache httpcache.Handler) *NetworkHandlerAPI {
	if cache == nil {
		cache = httpcache.NewNopClient()
	}

	return &NetworkHandlerAPI{
		storage:   st,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
		cache:     cache,
	}
}

func (api *NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

func (api *NetworkHandlerAPI) query(method string, args ...string) (*value.Value, error) {
	if api.Query == nil {
		return nil, errors.NotImplemented
	}

	return api.Query(payload.NewExecCode(execfunc.VotingAddress, method, args...))
}

// CacheInvalidationEvents are the events which drop the cached responses.
var CacheInvalidationEvents = []string{
	observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, "").String(),
	observer.NewEvent(observer.ResourceProposalCount, observer.ConditionAll, "").String(),
	observer.NewEvent(observer.ResourceAdmin, observer.ConditionAll, "").String(),
	observer.NewEvent(observer.ResourceInvocation, observer.ConditionAll, "").String(),
}

// InvalidateCache is triggered by `observer.InvocationObserver`.
func (api *NetworkHandlerAPI) InvalidateCache(observer.Event) {
	api.cache.Invalidate()
}

// ObserveInvocations invalidates the cache whenever an invocation changes
// the records.
func (api *NetworkHandlerAPI) ObserveInvocations() {
	for _, event := range CacheInvalidationEvents {
		observer.InvocationObserver.On(event, api.InvalidateCache)
	}
}
