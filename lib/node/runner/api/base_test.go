package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/contract"
	ctx "boscoin.io/votebook/lib/contract/context"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/contract/value"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/storage"
	"boscoin.io/votebook/lib/voting"
)

type apiTestHelper struct {
	t        *testing.T
	server   *httptest.Server
	st       *storage.LevelDBBackend
	api      *NetworkHandlerAPI
	contract *voting.Contract
	env      *voting.Env
	admin    *keypair.Full

	sync.Mutex
	queried []string
}

func prepareAPIServer(t *testing.T, cache httpcache.Handler) *apiTestHelper {
	st := storage.NewTestStorage()
	admin := keypair.Random()

	apiHandler := NewNetworkHandlerAPI(st, "/api", cache)

	router := mux.NewRouter()
	router.HandleFunc(apiHandler.HandlerURLPattern(GetAdminHandlerPattern), cache.WrapHandlerFunc(apiHandler.GetAdminHandler)).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetProposalsHandlerPattern), cache.WrapHandlerFunc(apiHandler.GetProposalsHandler)).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetProposalHandlerPattern), cache.WrapHandlerFunc(apiHandler.GetProposalHandler)).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetProposalVotersHandlerPattern), apiHandler.GetProposalVotersHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(GetInvocationHandlerPattern), apiHandler.GetInvocationHandler).Methods("GET")
	router.HandleFunc(apiHandler.HandlerURLPattern(PostInvocationsHandlerPattern), apiHandler.PostInvocationsHandler).
		Methods("POST").
		MatcherFunc(common.PostAndJSONMatcher)
	router.HandleFunc(apiHandler.HandlerURLPattern(GetNodeInfoPattern), apiHandler.GetNodeInfoHandler).Methods("GET")

	h := &apiTestHelper{
		t:        t,
		server:   httptest.NewServer(router),
		st:       st,
		api:      apiHandler,
		contract: voting.NewContract(voting.NewConfig()),
		env:      voting.NewTestEnv(st, admin.Address()),
		admin:    admin,
	}
	apiHandler.Query = h.query

	return h
}

// query runs the read-only method like `runner.Invoker.Query`, without any
// authorized address.
func (h *apiTestHelper) query(code payload.ExecCode) (*value.Value, error) {
	h.Lock()
	h.queried = append(h.queried, code.Method)
	h.Unlock()

	env := voting.NewEnv(voting.NewContractStorage(h.st, 1), voting.NewAddressAuthorizer())
	return contract.Execute(ctx.NewContext(env, h.contract), &code)
}

func (h *apiTestHelper) queriedMethods() []string {
	h.Lock()
	defer h.Unlock()

	return append([]string{}, h.queried...)
}

func (h *apiTestHelper) done() {
	h.server.Close()
	h.st.Close()
}

func (h *apiTestHelper) initialize() {
	require.NoError(h.t, h.contract.Initialize(h.env, h.admin.Address()))
}

func (h *apiTestHelper) create(n int) {
	for i := 0; i < n; i++ {
		_, err := h.contract.CreateProposal(h.env, "title", "description")
		require.NoError(h.t, err)
	}
}

func (h *apiTestHelper) get(path string) (int, map[string]interface{}) {
	resp, err := http.Get(h.server.URL + path)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(h.t, err)

	var m map[string]interface{}
	require.NoError(h.t, json.Unmarshal(b, &m), string(b))

	return resp.StatusCode, m
}

func records(m map[string]interface{}) []map[string]interface{} {
	embedded, ok := m["_embedded"].(map[string]interface{})
	if !ok {
		return nil
	}
	items, _ := embedded["records"].([]interface{})

	var rs []map[string]interface{}
	for _, i := range items {
		rs = append(rs, i.(map[string]interface{}))
	}

	return rs
}

func link(m map[string]interface{}, name string) string {
	l, ok := m["_links"].(map[string]interface{})[name].(map[string]interface{})
	if !ok {
		return ""
	}

	return l["href"].(string)
}
