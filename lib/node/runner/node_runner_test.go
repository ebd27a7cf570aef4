package runner

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/network"
	"boscoin.io/votebook/lib/storage"
	"boscoin.io/votebook/lib/voting"
)

func createTestNodeRunner(t *testing.T, conf common.Config) *NodeRunner {
	endpoint, err := common.ParseEndpoint("http://localhost:12480")
	require.NoError(t, err)

	networkConfig, err := network.NewHTTP2NetworkConfigFromEndpoint("test-node", endpoint)
	require.NoError(t, err)

	conf.NetworkID = TestNetworkID

	nr, err := NewNodeRunner(
		network.NewHTTP2Network(networkConfig),
		storage.NewTestStorage(),
		voting.NewConfig(),
		conf,
	)
	require.NoError(t, err)
	nr.Ready()

	return nr
}

func request(t *testing.T, nr *NodeRunner, method, path string, body interface{}) (int, map[string]interface{}) {
	var r *http.Request
	if body == nil {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewReader(common.MustMarshalJSON(body)))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	nr.ServeHTTP(w, r)

	var m map[string]interface{}
	if strings.Contains(w.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	}

	return w.Code, m
}

func TestNodeRunnerInvocations(t *testing.T) {
	nr := createTestNodeRunner(t, common.NewTestConfig())
	defer nr.Storage().Close()

	admin := keypair.Random()
	voter := keypair.Random()

	post := func(invocation payload.Invocation) (int, map[string]interface{}) {
		return request(t, nr, "POST", "/api/v1/invocations", invocation)
	}

	{
		status, m := request(t, nr, "GET", "/api/v1/admin", nil)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, float64(errors.NotInitialized.Code), m["code"])
	}

	{
		status, m := post(TestMakeInvocation(execfunc.MethodInitialize, []string{admin.Address()}, admin))
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, float64(1), m["ledger_sequence"])
	}

	{
		status, m := request(t, nr, "GET", "/api/v1/admin", nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, admin.Address(), m["address"])
	}

	{ // gated
		status, m := post(TestMakeInvocation(execfunc.MethodCreateProposal, []string{"title", ""}, voter))
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, float64(errors.Unauthorized.Code), m["code"])
	}

	{
		status, m := post(TestMakeInvocation(execfunc.MethodCreateProposal, []string{"title", "description"}, admin))
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, float64(1), m["value"])
		require.Equal(t, float64(2), m["ledger_sequence"])
	}

	vote := TestMakeInvocation(execfunc.MethodCastVote, []string{"1", "yes", voter.Address()}, voter)
	{
		status, _ := post(vote)
		require.Equal(t, http.StatusOK, status)

		// resubmitted
		status, m := post(vote)
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, float64(errors.InvocationAlreadyProcessed.Code), m["code"])

		status, m = post(TestMakeInvocation(execfunc.MethodCastVote, []string{"1", "no", voter.Address()}, voter))
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, float64(errors.AlreadyVoted.Code), m["code"])
	}

	{
		status, m := request(t, nr, "GET", "/api/v1/proposals/1", nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, float64(1), m["yes_votes"])
		require.Equal(t, float64(0), m["no_votes"])
		require.Equal(t, true, m["is_active"])
	}

	{
		status, m := request(t, nr, "GET", "/api/v1/invocations/"+vote.GetHash(), nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, execfunc.MethodCastVote, m["method"])
		require.Equal(t, float64(3), m["ledger_sequence"])
	}

	{
		status, _ := post(TestMakeInvocation(execfunc.MethodCloseProposal, []string{"1"}, admin))
		require.Equal(t, http.StatusOK, status)

		status, m := post(TestMakeInvocation(execfunc.MethodCloseProposal, []string{"1"}, admin))
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, float64(errors.ProposalClosed.Code), m["code"])
	}

	{
		status, m := request(t, nr, "GET", "/api/v1/", nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, string(TestNetworkID), m["network_id"])
		require.Equal(t, float64(4), m["ledger_sequence"])
		require.Equal(t, float64(1), m["proposal_count"])
		require.Equal(t, true, m["gated"])
		require.Equal(t, admin.Address(), m["admin"])
	}
}

func TestNodeRunnerCachedProposal(t *testing.T) {
	conf := common.NewTestConfig()
	conf.HTTPCacheAdapter = common.HTTPCacheMemoryAdapterName
	conf.HTTPCacheExpire = 0

	nr := createTestNodeRunner(t, conf)
	defer nr.Storage().Close()

	admin := keypair.Random()
	for _, invocation := range []payload.Invocation{
		TestMakeInvocation(execfunc.MethodInitialize, []string{admin.Address()}, admin),
		TestMakeInvocation(execfunc.MethodCreateProposal, []string{"title", "description"}, admin),
	} {
		status, _ := request(t, nr, "POST", "/api/v1/invocations", invocation)
		require.Equal(t, http.StatusOK, status)
	}

	_, m := request(t, nr, "GET", "/api/v1/proposals/1", nil)
	require.Equal(t, true, m["is_active"])

	status, _ := request(t, nr, "POST", "/api/v1/invocations", TestMakeInvocation(execfunc.MethodCloseProposal, []string{"1"}, admin))
	require.Equal(t, http.StatusOK, status)

	// the committed invocation drops the cached page
	_, m = request(t, nr, "GET", "/api/v1/proposals/1", nil)
	require.Equal(t, false, m["is_active"])
}

func TestNodeRunnerMetrics(t *testing.T) {
	nr := createTestNodeRunner(t, common.NewTestConfig())
	defer nr.Storage().Close()

	w := httptest.NewRecorder()
	nr.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNodeRunnerDebugJSONRPC(t *testing.T) {
	nr := createTestNodeRunner(t, common.NewTestConfig())
	defer nr.Storage().Close()

	body := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "DB.Echo",
		"params":  []string{"findme"},
		"id":      1,
	}
	status, m := request(t, nr, "POST", "/debug/jsonrpc", body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "findme", m["result"])
}
