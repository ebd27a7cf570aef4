package runner

import (
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/contract/native/execfunc"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/storage"
	"boscoin.io/votebook/lib/voting"
)

var TestNetworkID []byte = []byte("votebook-test-network")

func NewTestInvoker() *Invoker {
	return NewInvoker(TestNetworkID, storage.NewTestStorage(), voting.NewConfig())
}

// TestMakeInvocation makes the invocation of the voting contract signed by
// `signers`.
func TestMakeInvocation(method string, args []string, signers ...keypair.KP) payload.Invocation {
	invocation := payload.NewInvocation(payload.NewExecCode(execfunc.VotingAddress, method, args...))
	for _, kp := range signers {
		invocation.Sign(kp, TestNetworkID)
	}

	return invocation
}
