// NodeRunner bridges together the http network, the storage and the
// `Invoker`. It serves the public api of the voting ledger.
package runner

import (
	"net/http"
	"net/http/pprof"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/ledger"
	"boscoin.io/votebook/lib/metrics"
	"boscoin.io/votebook/lib/network"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/node/runner/api"
	"boscoin.io/votebook/lib/storage"
	"boscoin.io/votebook/lib/version"
	"boscoin.io/votebook/lib/voting"
)

// DebugPProf exposes the pprof handlers under `/debug/pprof`.
var DebugPProf bool

type NodeRunner struct {
	networkID []byte
	network   *network.HTTP2Network
	storage   *storage.LevelDBBackend
	invoker   *Invoker
	cache     httpcache.Handler

	log logging.Logger

	Conf common.Config
}

func NewNodeRunner(
	n *network.HTTP2Network,
	st *storage.LevelDBBackend,
	votingConfig voting.Config,
	conf common.Config,
) (nr *NodeRunner, err error) {
	nr = &NodeRunner{
		networkID: conf.NetworkID,
		network:   n,
		storage:   st,
		invoker:   NewInvoker(conf.NetworkID, st, votingConfig),
		log:       log.New(logging.Ctx{"node": n.Config().NodeName}),
		Conf:      conf,
	}

	if nr.cache, err = httpcache.NewHandler(conf, httpcache.WithLogger(nr.log)); err != nil {
		return
	}

	var seq uint64
	if seq, err = ledger.GetLedgerSequence(st); err != nil {
		return
	}
	metrics.Ledger.SetSequence(seq)
	nr.log.Debug("ledger loaded", "ledger-sequence", seq, "gated", votingConfig.Gated)

	return
}

func (nr *NodeRunner) Ready() {
	rateLimitMiddlewareAPI := network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleAPI)
	if err := nr.network.AddMiddleware(network.RouterNameAPI, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameAPI` has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameDebug, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameDebug` router has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameAPI, network.MetricsMiddleware(metrics.API)); err != nil {
		nr.log.Error("`network.MetricsMiddleware` for `RouterNameAPI` has an error", "err", err)
		return
	}

	// BaseRouter's middlewares impact all sub routers.
	if err := nr.network.AddMiddleware("", network.RecoverMiddleware(nr.log)); err != nil {
		nr.log.Error("Middleware has an error", "err", err)
		return
	}

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})
		cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
		if err := nr.network.AddMiddleware(network.RouterNameAPI, cors); err != nil {
			nr.log.Error("Middleware has an error", "err", err)
			return
		}
	}

	nr.network.AddHandler(network.UrlPathPrefixMetric, promhttp.Handler().ServeHTTP)

	// api handlers
	apiHandler := api.NewNetworkHandlerAPI(nr.storage, network.UrlPathPrefixAPI, nr.cache)
	apiHandler.Invoke = func(invocation payload.Invocation) (interface{}, error) {
		return nr.invoker.Invoke(invocation)
	}
	apiHandler.Query = nr.invoker.Query
	apiHandler.GetNodeInfo = nr.NodeInfo
	apiHandler.ObserveInvocations()

	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetNodeInfoPattern),
		apiHandler.GetNodeInfoHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetAdminHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetAdminHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetProposalsHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetProposalsHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetProposalHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetProposalHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetProposalVotersHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetProposalVotersHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetInvocationHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetInvocationHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostInvocationsHandlerPattern),
		apiHandler.PostInvocationsHandler,
	).Methods("POST", "OPTIONS").MatcherFunc(common.PostAndJSONMatcher)

	// debug
	nr.network.AddHandler(network.UrlPathPrefixDebug+"/jsonrpc", NewJSONRPCHandler(nr.storage).ServeHTTP).
		Methods("POST").
		MatcherFunc(common.PostAndJSONMatcher)

	if DebugPProf {
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/cmdline", pprof.Cmdline)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/profile", pprof.Profile)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/symbol", pprof.Symbol)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/trace", pprof.Trace)
		nr.network.AddHandler(network.UrlPathPrefixDebug+"/pprof/*", pprof.Index)
	}

	nr.network.AddHandler(api.GetNodeInfoPattern, apiHandler.GetNodeInfoHandler).Methods("GET")

	nr.network.Ready()
}

// Start blocks until `Stop` is called.
func (nr *NodeRunner) Start() (err error) {
	nr.log.Debug("NodeRunner started")
	nr.Ready()

	return nr.network.Start()
}

func (nr *NodeRunner) Stop() {
	nr.network.Stop()
}

// NodeInfo is the body of the node info api.
func (nr *NodeRunner) NodeInfo() map[string]interface{} {
	config := nr.invoker.Contract().Config

	info := map[string]interface{}{
		"node":         nr.network.Config().NodeName,
		"endpoint":     nr.network.Config().Endpoint.String(),
		"network_id":   string(nr.networkID),
		"version":      version.GetInfo(),
		"contract":     execfunc.VotingAddress,
		"gated":        config.Gated,
		"close_policy": config.ClosePolicy,
	}

	if seq, err := ledger.GetLedgerSequence(nr.storage); err != nil {
		nr.log.Error("failed to get ledger sequence", "error", err)
	} else {
		info["ledger_sequence"] = seq
	}

	if v, err := nr.invoker.Query(payload.NewExecCode(execfunc.VotingAddress, execfunc.MethodGetProposalCount)); err != nil {
		nr.log.Error("failed to get proposal count", "error", err)
	} else {
		info["proposal_count"] = v.Interface()
	}

	if v, err := nr.invoker.Query(payload.NewExecCode(execfunc.VotingAddress, execfunc.MethodGetAdmin)); err == nil {
		info["admin"] = v.String()
	} else if err != errors.NotInitialized {
		nr.log.Error("failed to get admin", "error", err)
	}

	return info
}

func (nr *NodeRunner) NetworkID() []byte {
	return nr.networkID
}

func (nr *NodeRunner) Network() *network.HTTP2Network {
	return nr.network
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) Invoker() *Invoker {
	return nr.invoker
}

func (nr *NodeRunner) Log() logging.Logger {
	return nr.log
}

// ServeHTTP serves the requests without the listening server; it is used by
// tests.
func (nr *NodeRunner) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	nr.network.Handler().ServeHTTP(w, r)
}
