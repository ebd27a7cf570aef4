package network

import (
	"context"
	"fmt"
	goLog "log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/net/http2"

	"boscoin.io/votebook/lib/errors"
)

const (
	RouterNameAPI    = "api"
	RouterNameMetric = "metrics"
	RouterNameDebug  = "debug"
)

var (
	UrlPathPrefixAPI    = fmt.Sprintf("/%s", RouterNameAPI)
	UrlPathPrefixDebug  = fmt.Sprintf("/%s", RouterNameDebug)
	UrlPathPrefixMetric = fmt.Sprintf("/%s", RouterNameMetric)

	// ShutdownTimeout bounds how long `Stop` waits for in-flight requests.
	ShutdownTimeout = 5 * time.Second
)

type HTTP2Network struct {
	sync.RWMutex

	server    *http.Server
	router    *mux.Router
	rootRoute *mux.Route
	routers   map[string]*mux.Router

	ready bool

	config *HTTP2NetworkConfig
	log    logging.Logger
}

func NewHTTP2Network(config *HTTP2NetworkConfig) (h2n *HTTP2Network) {
	httpLog := log.New(logging.Ctx{"module": "http", "node": config.NodeName})
	errorLog := goLog.New(HTTP2ErrorLog15Writer{httpLog}, "", 0)

	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ErrorLog:          errorLog,
	}
	server.SetKeepAlivesEnabled(true)

	if config.IsHTTPS() {
		http2.ConfigureServer(
			server,
			&http2.Server{
				IdleTimeout: config.IdleTimeout,
			},
		)
	}

	baseRouter := mux.NewRouter()

	h2n = &HTTP2Network{
		server: server,
		router: baseRouter,
		config: config,
		log:    httpLog,
	}
	h2n.routers = map[string]*mux.Router{
		RouterNameAPI:    baseRouter.PathPrefix(UrlPathPrefixAPI).Subrouter(),
		RouterNameMetric: baseRouter.PathPrefix(UrlPathPrefixMetric).Subrouter(),
		RouterNameDebug:  baseRouter.PathPrefix(UrlPathPrefixDebug).Subrouter(),
	}

	h2n.rootRoute = h2n.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !h2n.IsReady() {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	})
	h2n.server.Handler = h2n.Handler()

	return
}

func (t *HTTP2Network) Config() *HTTP2NetworkConfig {
	return t.config
}

// Handler is the root handler of the server; it logs every request and
// response.
func (t *HTTP2Network) Handler() http.Handler {
	return HTTP2Log15Handler{log: t.log, handler: t.router}
}

// AddMiddleware adds middlewares to the router, `routerName`; empty
// `routerName` means the base router, whose middlewares apply to every sub
// router.
func (t *HTTP2Network) AddMiddleware(routerName string, mws ...mux.MiddlewareFunc) error {
	var r *mux.Router
	if len(routerName) < 1 {
		r = t.router
	} else {
		var ok bool
		if r, ok = t.routers[routerName]; !ok {
			return errors.NotMatchHTTPRouter.Clone().SetData("router", routerName)
		}
	}
	for _, mw := range mws {
		r.Use(mw)
	}
	return nil
}

func (t *HTTP2Network) AddHandler(pattern string, handler http.HandlerFunc) (router *mux.Route) {
	var routerName string
	var prefix string
	switch {
	case strings.HasPrefix(pattern, UrlPathPrefixAPI):
		routerName = RouterNameAPI
		prefix = pattern[len(UrlPathPrefixAPI):]
	case strings.HasPrefix(pattern, UrlPathPrefixMetric):
		routerName = RouterNameMetric
		prefix = pattern[len(UrlPathPrefixMetric):]
	case strings.HasPrefix(pattern, UrlPathPrefixDebug):
		routerName = RouterNameDebug
		prefix = pattern[len(UrlPathPrefixDebug):]
	default:
		if pattern == "" || pattern == "/" {
			return t.rootRoute.Handler(handler)
		}
		return t.router.HandleFunc(pattern, handler)
	}

	r := t.routers[routerName]

	// if a pattern has a suffix *,the router sets path prefix and handler
	if strings.HasSuffix(prefix, "*") {
		pathPrefix := strings.TrimSuffix(prefix, "*")
		return r.PathPrefix(pathPrefix).Handler(handler)
	}
	return r.HandleFunc(prefix, handler)
}

func (t *HTTP2Network) Ready() {
	t.Lock()
	defer t.Unlock()

	t.ready = true
}

func (t *HTTP2Network) IsReady() bool {
	t.RLock()
	defer t.RUnlock()

	return t.ready
}

// Start blocks until the server is stopped. `Stop` makes `Start` return
// nil.
func (t *HTTP2Network) Start() (err error) {
	t.log.Debug("starting server", "config", t.config)

	if t.config.IsHTTPS() {
		err = t.server.ListenAndServeTLS(t.config.TLSCertFile, t.config.TLSKeyFile)
	} else {
		err = t.server.ListenAndServe()
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (t *HTTP2Network) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := t.server.Shutdown(ctx); err != nil {
		t.log.Error("failed to shutdown server", "error", err)
	}
}
