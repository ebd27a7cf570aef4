package runner

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	rpcjson "github.com/gorilla/rpc/json"
	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/voting"
)

type jsonrpcTestHelper struct {
	t      *testing.T
	server *httptest.Server
	h      *invokerTestHelper
}

func newJSONRPCTestHelper(t *testing.T) *jsonrpcTestHelper {
	h := newInvokerTestHelper(t)

	return &jsonrpcTestHelper{
		t:      t,
		h:      h,
		server: httptest.NewServer(NewJSONRPCHandler(h.iv.Storage())),
	}
}

func (jp *jsonrpcTestHelper) done() {
	jp.server.Close()
	jp.h.done()
}

func (jp *jsonrpcTestHelper) request(method string, args interface{}, result interface{}) error {
	message, err := rpcjson.EncodeClientRequest(method, args)
	require.NoError(jp.t, err)

	req, err := http.NewRequest("POST", jp.server.URL, bytes.NewBuffer(message))
	require.NoError(jp.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := jp.server.Client().Do(req)
	require.NoError(jp.t, err)
	require.Equal(jp.t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	return rpcjson.DecodeClientResponse(resp.Body, result)
}

func TestJSONRPCEcho(t *testing.T) {
	jp := newJSONRPCTestHelper(t)
	defer jp.done()

	token := common.NowISO8601()

	args := DBEchoArgs(token)
	var result DBEchoResult
	require.NoError(t, jp.request("DB.Echo", &args, &result))
	require.Equal(t, token, string(result))
}

func TestJSONRPCHasAndGet(t *testing.T) {
	jp := newJSONRPCTestHelper(t)
	defer jp.done()

	{
		args := DBHasArgs(voting.KeyAdmin)
		var result DBHasResult
		require.NoError(t, jp.request("DB.Has", &args, &result))
		require.True(t, bool(result))
	}

	{
		args := DBHasArgs(voting.GetProposalKey(1))
		var result DBHasResult
		require.NoError(t, jp.request("DB.Has", &args, &result))
		require.False(t, bool(result))
	}

	{
		args := DBGetArgs(voting.KeyAdmin)
		var result DBGetResult
		require.NoError(t, jp.request("DB.Get", &args, &result))
		require.Equal(t, voting.KeyAdmin, string(result.Key))

		var admin string
		require.NoError(t, json.Unmarshal(result.Value, &admin))
		require.Equal(t, jp.h.admin.Address(), admin)
	}

	{
		args := DBGetArgs("findme")
		var result DBGetResult
		require.Error(t, jp.request("DB.Get", &args, &result))
	}
}

func TestJSONRPCWalk(t *testing.T) {
	jp := newJSONRPCTestHelper(t)
	defer jp.done()

	for i := 0; i < 5; i++ {
		jp.h.create()
	}
	voter := keypair.Random()
	_, err := jp.h.invoke(execfunc.MethodCastVote, []string{"1", "yes", voter.Address()}, voter)
	require.NoError(t, err)

	{
		args := DBWalkArgs{Prefix: voting.ProposalPrefix}
		var result DBWalkResult
		require.NoError(t, jp.request("DB.Walk", &args, &result))
		require.Equal(t, MaxLimitWalkOptions, result.Limit)
		require.Equal(t, 5, len(result.Items))
		require.Equal(t, voting.GetProposalKey(1), string(result.Items[0].Key))
	}

	{
		args := DBWalkArgs{
			Prefix:  voting.ProposalPrefix,
			Options: WalkOptions{Limit: 2, Reverse: true},
		}
		var result DBWalkResult
		require.NoError(t, jp.request("DB.Walk", &args, &result))
		require.Equal(t, 2, len(result.Items))
		require.Equal(t, voting.GetProposalKey(5), string(result.Items[0].Key))
		require.Equal(t, voting.GetProposalKey(4), string(result.Items[1].Key))
	}

	{
		args := DBWalkArgs{Prefix: voting.VotedPrefix}
		var result DBWalkResult
		require.NoError(t, jp.request("DB.Walk", &args, &result))
		require.Equal(t, 1, len(result.Items))
		require.Equal(t, voting.GetVotedKey(1, voter.Address()), string(result.Items[0].Key))
	}
}
