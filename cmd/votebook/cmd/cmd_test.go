package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/client"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/voting"
)

func setDefaultNodeFlags() {
	flagNetworkID = "test-network"
	flagBindURL = "http://127.0.0.1:12480"
	flagStorageConfigString = "memory://"
	flagGated = "true"
	flagClosePolicy = string(voting.ClosePolicyReject)
	flagTTLThreshold = "5000"
	flagTTLExtendTo = "5000"
	flagRateLimitAPI = nil
	flagHTTPCacheAdapter = ""
	flagHTTPCachePoolSize = "100"
	flagHTTPCacheExpire = "3s"
	flagHTTPCacheRedis = nil
	flagLogLevel = "error"
	flagLogOutput = ""
}

func TestParseFlagsNode(t *testing.T) {
	setDefaultNodeFlags()

	require.NoError(t, parseFlagsNode())
	require.Equal(t, []byte("test-network"), conf.NetworkID)
	require.Equal(t, "127.0.0.1:12480", bindEndpoint.Host)
	require.Equal(t, "3s", bindEndpoint.Query().Get("IdleTimeout"))
	require.Equal(t, "memory", storageConfig.Scheme)
	require.True(t, votingConfig.Gated)
	require.Equal(t, voting.ClosePolicyReject, votingConfig.ClosePolicy)
	require.Equal(t, common.RateLimitAPI, conf.RateLimitRuleAPI.Default)
	require.Equal(t, 100, conf.HTTPCachePoolSize)
	require.Equal(t, 3*time.Second, conf.HTTPCacheExpire)
}

func TestParseFlagsNodeVoting(t *testing.T) {
	setDefaultNodeFlags()
	flagGated = "false"
	flagClosePolicy = "ignore"
	flagTTLThreshold = "10"
	flagTTLExtendTo = "20"

	require.NoError(t, parseFlagsNode())
	require.False(t, votingConfig.Gated)
	require.Equal(t, voting.ClosePolicyIgnore, votingConfig.ClosePolicy)
	require.Equal(t, uint32(10), votingConfig.TTLThreshold)
	require.Equal(t, uint32(20), votingConfig.TTLExtendTo)
}

func TestParseFlagsNodeBad(t *testing.T) {
	cases := map[string]func(){
		"network-id":   func() { flagNetworkID = "" },
		"bind":         func() { flagBindURL = "ftp://127.0.0.1" },
		"storage":      func() { flagStorageConfigString = "unknown://" },
		"gated":        func() { flagGated = "findme" },
		"close-policy": func() { flagClosePolicy = "findme" },
		"ttl":          func() { flagTTLThreshold = "-1" },
		"rate-limit":   func() { flagRateLimitAPI = []string{"findme"} },
		"cache":        func() { flagHTTPCacheAdapter = "findme" },
		"pool-size":    func() { flagHTTPCachePoolSize = "0" },
		"expire":       func() { flagHTTPCacheExpire = "findme" },
		"redis":        func() { flagHTTPCacheAdapter = common.HTTPCacheRedisAdapterName },
		"log-level":    func() { flagLogLevel = "findme" },
	}

	for name, set := range cases {
		setDefaultNodeFlags()
		set()
		require.Error(t, parseFlagsNode(), name)
	}
}

func TestParseFlagsNodeCache(t *testing.T) {
	setDefaultNodeFlags()
	flagHTTPCacheAdapter = common.HTTPCacheRedisAdapterName
	flagHTTPCacheRedis = []string{"server1=localhost:6379", "localhost:6380"}

	require.NoError(t, parseFlagsNode())
	require.Equal(t, common.HTTPCacheRedisAdapterName, conf.HTTPCacheAdapter)
	require.Equal(
		t,
		map[string]string{"server1": "localhost:6379", "redis1": "localhost:6380"},
		conf.HTTPCacheRedisAddrs,
	)

	_, err := parseFlagRedisAddrs([]string{"server1="})
	require.Error(t, err)
}

func TestMakeInvocation(t *testing.T) {
	admin := keypair.Random()
	voter := keypair.Random()

	flagInvokeNetworkID = "test-network"
	flagInvokeFormat = "default"
	flagSecretSeeds = []string{admin.Seed(), voter.Seed()}

	invocation, err := makeInvocation(execfunc.MethodCastVote, []string{"1", "yes", voter.Address()})
	require.NoError(t, err)
	require.Equal(t, execfunc.VotingAddress, invocation.B.ExecCode.ContractAddress)
	require.Equal(t, execfunc.MethodCastVote, invocation.B.ExecCode.Method)
	require.Equal(t, []string{"1", "yes", voter.Address()}, invocation.B.ExecCode.Args)
	require.Equal(t, []string{admin.Address(), voter.Address()}, invocation.Signers())
	require.NoError(t, invocation.IsWellFormed([]byte("test-network")))

	{ // address is not a signer
		flagSecretSeeds = []string{admin.Address()}
		_, err := makeInvocation(execfunc.MethodGetAdmin, nil)
		require.Error(t, err)
	}

	{
		flagSecretSeeds = nil
		flagInvokeNetworkID = ""
		_, err := makeInvocation(execfunc.MethodGetAdmin, nil)
		require.Error(t, err)
	}

	{
		flagInvokeNetworkID = "test-network"
		flagInvokeFormat = "findme"
		_, err := makeInvocation(execfunc.MethodGetAdmin, nil)
		require.Error(t, err)
	}
}

func TestInvokeResultEncode(t *testing.T) {
	result := client.InvocationResult{
		Hash:           "findme",
		Method:         execfunc.MethodCreateProposal,
		Value:          json.RawMessage("3"),
		LedgerSequence: 9,
	}

	r, err := toInvokeResult(result)
	require.NoError(t, err)
	require.Equal(t, float64(3), r.Value)

	var b bytes.Buffer
	require.NoError(t, invokeEncoders["default"](r, &b))
	require.Equal(t, "findme create_proposal ledger=9\n3\n", b.String())

	b.Reset()
	require.NoError(t, invokeEncoders["json"](r, &b))
	require.Equal(
		t,
		`{"hash":"findme","method":"create_proposal","value":3,"ledger_sequence":9}`+"\n",
		b.String(),
	)
}
