package execfunc

import (
	"strconv"

	"boscoin.io/votebook/lib/contract/native"
	"boscoin.io/votebook/lib/contract/payload"
	"boscoin.io/votebook/lib/contract/value"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/voting"
)

var VotingAddress = "VOTEBOOK"

const (
	MethodInitialize       = "initialize"
	MethodCreateProposal   = "create_proposal"
	MethodCloseProposal    = "close_proposal"
	MethodCastVote         = "cast_vote"
	MethodViewProposal     = "view_proposal"
	MethodGetProposalCount = "get_proposal_count"
	MethodGetAdmin         = "get_admin"
)

// ReadOnlyMethods do not write anything.
var ReadOnlyMethods = []string{
	MethodViewProposal,
	MethodGetProposalCount,
	MethodGetAdmin,
}

func init() {
	native.AddContract(VotingAddress, RegisterVoting)
}

func RegisterVoting(ex *native.NativeExecutor) {
	ex.RegisterFunc(MethodInitialize, initialize)
	ex.RegisterFunc(MethodCreateProposal, createProposal)
	ex.RegisterFunc(MethodCloseProposal, closeProposal)
	ex.RegisterFunc(MethodCastVote, castVote)
	ex.RegisterFunc(MethodViewProposal, viewProposal)
	ex.RegisterFunc(MethodGetProposalCount, getProposalCount)
	ex.RegisterFunc(MethodGetAdmin, getAdmin)
}

func checkArgs(code *payload.ExecCode, min, max int) error {
	if n := len(code.Args); n < min || n > max {
		return errors.BadArgument.Clone().
			SetData("method", code.Method).
			SetData("args", code.Args)
	}

	return nil
}

// ParseVote accepts "yes", "no" and the values of `strconv.ParseBool`.
func ParseVote(s string) (bool, error) {
	switch s {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}

	vote, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.BadArgument.Clone().SetData("vote", s)
	}

	return vote, nil
}

func initialize(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(code, 1, 1); err != nil {
		return nil, err
	}

	if err := ex.Context.Voting().Initialize(ex.Context.Env(), code.Args[0]); err != nil {
		return nil, err
	}

	return value.ToValue(nil)
}

// createProposal takes optional title and description.
func createProposal(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(code, 0, 2); err != nil {
		return nil, err
	}

	var title, description string
	if len(code.Args) > 0 {
		title = code.Args[0]
	}
	if len(code.Args) > 1 {
		description = code.Args[1]
	}

	id, err := ex.Context.Voting().CreateProposal(ex.Context.Env(), title, description)
	if err != nil {
		return nil, err
	}

	return value.ToValue(id)
}

func closeProposal(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(code, 1, 1); err != nil {
		return nil, err
	}

	id, err := voting.ParseProposalID(code.Args[0])
	if err != nil {
		return nil, err
	}

	if err = ex.Context.Voting().CloseProposal(ex.Context.Env(), id); err != nil {
		return nil, err
	}

	return value.ToValue(nil)
}

func castVote(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(code, 3, 3); err != nil {
		return nil, err
	}

	id, err := voting.ParseProposalID(code.Args[0])
	if err != nil {
		return nil, err
	}

	vote, err := ParseVote(code.Args[1])
	if err != nil {
		return nil, err
	}

	if err = ex.Context.Voting().CastVote(ex.Context.Env(), id, vote, code.Args[2]); err != nil {
		return nil, err
	}

	return value.ToValue(nil)
}

func viewProposal(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(code, 1, 1); err != nil {
		return nil, err
	}

	id, err := voting.ParseProposalID(code.Args[0])
	if err != nil {
		return nil, err
	}

	proposal, err := ex.Context.Voting().ViewProposal(ex.Context.Env(), id)
	if err != nil {
		return nil, err
	}

	return value.ToValue(proposal)
}

func getProposalCount(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(code, 0, 0); err != nil {
		return nil, err
	}

	count, err := ex.Context.Voting().GetProposalCount(ex.Context.Env())
	if err != nil {
		return nil, err
	}

	return value.ToValue(count)
}

func getAdmin(ex *native.NativeExecutor, code *payload.ExecCode) (*value.Value, error) {
	if err := checkArgs(code, 0, 0); err != nil {
		return nil, err
	}

	admin, err := ex.Context.Voting().GetAdmin(ex.Context.Env())
	if err != nil {
		return nil, err
	}

	return value.ToValue(admin)
}
